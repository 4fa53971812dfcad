package bridge

import (
	"github.com/ircbridge/discord-irc/dstate"
	"github.com/matterbridge/discordgo"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func (d *discordBot) onReady(s *discordgo.Session, m *discordgo.Ready) {
	d.log.WithField("user", m.User.Username).Infoln("Connected to Discord")

	if d.guildID == "" {
		return
	}

	guild, err := dstate.Guild(s, d.guildID)
	if err != nil {
		d.log.WithError(err).WithField("guild", d.guildID).Warnln("could not find configured guild")
		return
	}
	d.log.WithField("guild", guild.Name).Infoln("Bridging guild")

	// Fires GuildMembersChunk events, which discordgo adds to the state
	err = d.RequestGuildMembers(d.guildID, "", 0, false)
	if err != nil {
		d.log.Warningln(errors.Wrap(err, "could not request guild members").Error())
	}
}

func (d *discordBot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil {
		return
	}

	channel, err := dstate.Channel(s, m.ChannelID)
	if err != nil {
		d.log.WithError(err).WithField("channel", m.ChannelID).Warnln("could not find channel of message")
		return
	}

	// Private messages are not bridged
	if channel.Type != discordgo.ChannelTypeGuildText {
		return
	}

	guild, err := dstate.Snapshot(s, channel.GuildID)
	if err != nil {
		d.log.WithError(err).WithFields(log.Fields{
			"guild":   channel.GuildID,
			"channel": channel.ID,
		}).Debugln("Guild is not cached, mentions will not be resolved")
		guild = nil
	}

	d.bridge.push(DiscordMessage{
		Message:     m.Message,
		ChannelName: channel.Name,
		Guild:       guild,
	})
}
