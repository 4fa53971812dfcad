package bridge

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ircbridge/discord-irc/commands"
	"github.com/ircbridge/discord-irc/dstate"
	"github.com/matterbridge/discordgo"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// outboxSize bounds how many messages may wait to be sent to Discord.
const outboxSize = 64

type discordMessage struct {
	channelID string
	content   string
}

type discordBot struct {
	*discordgo.Session
	bridge *Bridge

	guildID string

	outboxMu sync.Mutex
	outbox   chan discordMessage
	closed   bool
	wg       sync.WaitGroup

	log *log.Entry
}

func newDiscord(bridge *Bridge, botToken, guildID string) (*discordBot, error) {
	// Create a new Discord session using the provided bot token.
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, errors.Wrap(err, "discord, could not create new session")
	}
	session.StateEnabled = true

	discord := &discordBot{
		Session: session,
		bridge:  bridge,
		guildID: guildID,

		outbox: make(chan discordMessage, outboxSize),
		log:    log.WithField("prefix", "discord"),
	}

	discordgo.Logger = discord.logf

	// These events are all fired in separate goroutines
	discord.AddHandler(discord.onReady)
	discord.AddHandler(discord.onMessageCreate)

	return discord, nil
}

// logf forwards discordgo's own logging to logrus.
func (d *discordBot) logf(level, caller int, format string, a ...interface{}) {
	entry := d.log.WithField("caller", caller)
	msg := fmt.Sprintf(format, a...)

	switch level {
	case discordgo.LogError:
		entry.Errorln(msg)
	case discordgo.LogWarning:
		entry.Warnln(msg)
	case discordgo.LogInformational:
		entry.Infoln(msg)
	default:
		entry.Debugln(msg)
	}
}

func (d *discordBot) Open() error {
	err := d.Session.Open()
	if err != nil {
		return errors.Wrap(err, "discord, could not open session")
	}

	d.wg.Add(1)
	go d.sendLoop()

	return nil
}

// Close drains the outbox and closes the session. Later calls do nothing.
func (d *discordBot) Close() error {
	d.outboxMu.Lock()
	if d.closed {
		d.outboxMu.Unlock()
		return nil
	}
	d.closed = true
	close(d.outbox)
	d.outboxMu.Unlock()

	d.wg.Wait()
	return d.Session.Close()
}

// sendLoop delivers queued messages in order until the outbox is closed.
func (d *discordBot) sendLoop() {
	defer d.wg.Done()

	for m := range d.outbox {
		if _, err := d.ChannelMessageSend(m.channelID, m.content); err != nil {
			d.log.WithError(err).WithFields(log.Fields{
				"msg.channel": m.channelID,
				"msg.content": m.content,
			}).Errorln("could not transmit message to discord")
		}
	}
}

func (d *discordBot) Side() commands.Side {
	return commands.Discord
}

// SendText queues content to be sent to the channel with the given ID.
func (d *discordBot) SendText(channelID, content string) {
	d.outboxMu.Lock()
	defer d.outboxMu.Unlock()

	if d.closed {
		d.log.WithField("msg.channel", channelID).Warnln("Discord is closed, dropping message")
		return
	}

	select {
	case d.outbox <- discordMessage{channelID, content}:
	default:
		d.log.WithField("msg.channel", channelID).Warnln("Discord outbox is full, dropping message")
	}
}

func (d *discordBot) UserID() string {
	if d.State == nil || d.State.User == nil {
		return ""
	}
	return d.State.User.ID
}

// Channel returns the channel with the given ID.
func (d *discordBot) Channel(channelID string) (*discordgo.Channel, error) {
	return dstate.Channel(d.Session, channelID)
}

// FindChannel resolves a channel ID, or a "#name" text channel, along with a
// snapshot of the guild it belongs to.
func (d *discordBot) FindChannel(ref string) (*discordgo.Channel, *discordgo.Guild, bool) {
	var channel *discordgo.Channel

	if strings.HasPrefix(ref, "#") {
		channel = d.channelByName(ref[1:])
	} else if c, err := d.Channel(ref); err == nil {
		channel = c
	}

	if channel == nil {
		return nil, nil, false
	}

	guild, err := dstate.Snapshot(d.Session, channel.GuildID)
	if err != nil {
		d.log.WithError(err).WithField("guild", channel.GuildID).Debugln("Guild is not cached")
		guild = nil
	}

	return channel, guild, true
}

func (d *discordBot) channelByName(name string) *discordgo.Channel {
	d.State.RLock()
	defer d.State.RUnlock()

	for _, g := range d.State.Guilds {
		if d.guildID != "" && g.ID != d.guildID {
			continue
		}

		for _, c := range g.Channels {
			if c.Type == discordgo.ChannelTypeGuildText && strings.EqualFold(c.Name, name) {
				return c
			}
		}
	}

	return nil
}
