package bridge

import (
	"fmt"
	"strings"

	"github.com/ircbridge/discord-irc/commands"
	ircf "github.com/ircbridge/discord-irc/irc/format"
	"github.com/matterbridge/discordgo"
	log "github.com/sirupsen/logrus"
)

// A sender delivers text to one side of the bridge. Delivery is not
// confirmed; failures are handled by the transport.
type sender interface {
	Side() commands.Side
	SendText(target, text string)
}

// discordSide is what the relay needs from the Discord transport.
type discordSide interface {
	sender
	ChannelLookup

	// UserID is the ID of the bridge's own Discord user.
	UserID() string

	// FindChannel resolves a channel ID or "#name" to a channel and a
	// snapshot of its guild.
	FindChannel(ref string) (*discordgo.Channel, *discordgo.Guild, bool)
}

// ircSide is what the relay needs from the IRC transport.
type ircSide interface {
	sender
	GetNick() string
	Join(channel string)
	SendRaw(line string)
}

// The Relay turns events from either network into messages for the other.
//
// Relay is not safe for concurrent use: events must be dispatched one at a
// time, which Bridge does from its loop.
type Relay struct {
	config   *Config
	format   Format
	channels *ChannelMap
	members  *Members
	store    *commands.Store
	handler  *commands.Handler

	discord    discordSide
	discordOut sender
	irc        ircSide

	log *log.Entry
}

func newRelay(conf *Config, channels *ChannelMap, store *commands.Store, discord discordSide, irc ircSide) *Relay {
	r := &Relay{
		config:   conf,
		format:   conf.Format.withDefaults(),
		channels: channels,
		members:  NewMembers(log.WithField("prefix", "members")),
		store:    store,

		discord:    discord,
		discordOut: massMentionEscaper{discord},
		irc:        irc,

		log: log.WithField("prefix", "relay"),
	}

	if conf.CommandHandler {
		r.handler = commands.NewHandler(store)
	}

	return r
}

// Dispatch handles a single event to completion.
func (r *Relay) Dispatch(ev Event) {
	switch e := ev.(type) {
	case DiscordMessage:
		r.handleDiscordMessage(e)
	case IRCMessage:
		r.handleIRCMessage(e)
	case IRCRegistered:
		r.handleRegistered()
	case IRCJoin:
		r.handleJoin(e)
	case IRCPart:
		r.handlePart(e)
	case IRCKick:
		r.handleKick(e)
	case IRCQuit:
		r.handleQuit(e)
	case IRCNick:
		r.handleNick(e)
	case IRCNames:
		r.members.OnSnapshot(e.Channel, e.Nicks)
	case IRCInvite:
		r.handleInvite(e)
	default:
		r.log.Warnf("Ignoring unknown event %T", ev)
	}
}

func (r *Relay) handleDiscordMessage(m DiscordMessage) {
	if m.Message == nil || m.Author == nil {
		return
	}

	// Ignore messages sent by the bridge itself
	if m.Author.ID == r.discord.UserID() {
		return
	}

	if r.isIgnoredDiscordUser(m.Author) {
		r.log.WithField("author", m.Author.ID).Debugln("Ignoring message from ignored Discord user")
		return
	}

	ircChannel, ok := r.channels.IRCChannelFor(m.ChannelID, m.ChannelName)
	if !ok {
		r.log.WithFields(log.Fields{
			"channel": m.ChannelID,
			"name":    m.ChannelName,
		}).Debugln("Ignoring message sent from an unmapped Discord channel.")
		return
	}

	nickname := DisplayName(m.Author, m.Guild)
	displayUsername := nickname
	if r.config.IRCNickColor {
		displayUsername = ircf.ColorNick(nickname)
	}

	patterns := map[string]string{
		"author":          nickname,
		"nickname":        nickname,
		"displayUsername": displayUsername,
		"text":            m.Content,
		"discordChannel":  "#" + m.ChannelName,
		"ircChannel":      ircChannel,
	}

	if commands.IsCommand(m.Content, r.config.CommandCharacters) {
		from := commands.Sender{
			Side:  commands.Discord,
			Names: discordIdentities(m.Author),
		}
		r.handleCommand(m.Content, from, r.discordOut, m.ChannelID, r.irc, ircChannel, patterns)
		return
	}

	if text := DiscordToIRC(m.Content, m.Mentions, m.Guild, r.discord); text != "" {
		patterns["text"] = ircf.ToIRC(text)
		line := Substitute(r.format.IRCText, patterns)

		r.log.WithFields(log.Fields{
			"channel": ircChannel,
			"text":    line,
		}).Debugln("Sending message to IRC")
		r.irc.SendText(ircChannel, line)
	}

	for _, a := range m.Attachments {
		patterns["attachmentURL"] = a.URL
		line := Substitute(r.format.URLAttachment, patterns)

		r.log.WithFields(log.Fields{
			"channel": ircChannel,
			"text":    line,
		}).Debugln("Sending attachment URL to IRC")
		r.irc.SendText(ircChannel, line)
	}
}

func (r *Relay) handleIRCMessage(msg IRCMessage) {
	if strings.EqualFold(msg.Nick, r.irc.GetNick()) {
		return
	}

	if r.isIgnoredIRCUser(msg.Nick, msg.Source) {
		r.log.WithField("source", msg.Source).Debugln("Ignoring message from ignored IRC user")
		return
	}

	channel, guild, ok := r.findDiscordChannel(msg.Channel)
	if !ok {
		return
	}

	text := msg.Text
	switch msg.Kind {
	case Notice:
		text = "*" + text + "*"
	case Action:
		text = "_" + text + "_"
	}

	patterns := map[string]string{
		"author":         msg.Nick,
		"nickname":       msg.Nick,
		"text":           text,
		"discordChannel": "#" + channel.Name,
		"ircChannel":     msg.Channel,
	}

	if commands.IsCommand(text, r.config.CommandCharacters) {
		from := commands.Sender{
			Side:  commands.IRC,
			Names: []string{msg.Nick},
		}
		r.handleCommand(text, from, r.irc, msg.Channel, r.discordOut, channel.ID, patterns)
		return
	}

	withMentions := IRCToDiscord(escapeMassMentions(text), guild)
	patterns["text"] = ircf.ToDiscord(text)
	patterns["withMentions"] = ircf.ToDiscord(withMentions)

	line := Substitute(r.format.Discord, patterns)
	r.log.WithFields(log.Fields{
		"irc":     msg.Channel,
		"discord": "#" + channel.Name,
		"text":    line,
	}).Debugln("Sending message to Discord")
	r.discordOut.SendText(channel.ID, line)
}

// handleCommand deals with a command that arrived on origin, at originTarget.
//
// A command with a canned response is answered on origin. So is a built-in
// command. Anything else is forwarded to dest, after the command prelude.
func (r *Relay) handleCommand(text string, from commands.Sender, origin sender, originTarget string, dest sender, destTarget string, patterns map[string]string) {
	if response, ok := r.commandResponse(text); ok {
		r.log.WithField("command", text).Debugln("Answering command with canned response")
		origin.SendText(originTarget, response)
		return
	}

	if r.handler != nil {
		reply := func(s string) { origin.SendText(originTarget, s) }
		if r.handler.Run(commands.Parse(text), from, reply) {
			return
		}
	}

	patterns["side"] = origin.Side().Title()
	r.log.WithFields(log.Fields{
		"side":   origin.Side(),
		"target": destTarget,
		"text":   text,
	}).Debugln("Forwarding command message")

	if r.format.CommandPrelude != "" {
		dest.SendText(destTarget, Substitute(r.format.CommandPrelude, patterns))
	}
	dest.SendText(destTarget, text)
}

// commandResponse looks up the canned response to text. Configuration keys
// may have been lower-cased on load, so that is tried second.
func (r *Relay) commandResponse(text string) (string, bool) {
	if response, ok := r.config.CommandResponses[text]; ok {
		return response, true
	}
	response, ok := r.config.CommandResponses[strings.ToLower(text)]
	return response, ok
}

func (r *Relay) handleRegistered() {
	r.log.Infoln("Connected to IRC")

	for _, cmd := range r.config.AutoSendCommands {
		if line := rawCommand(cmd); line != "" {
			r.irc.SendRaw(line)
		}
	}

	r.irc.SendRaw(GetJoinCommand(r.config.ChannelMappings))
}

func (r *Relay) handleJoin(e IRCJoin) {
	self := r.isSelf(e.Nick)
	if !r.members.OnJoin(e.Channel, e.Nick, self) {
		return
	}

	if self && !r.config.AnnounceSelfJoin {
		return
	}
	r.statusNotice(e.Channel, fmt.Sprintf("*%s* has joined the channel", e.Nick))
}

func (r *Relay) handlePart(e IRCPart) {
	if !r.members.OnPart(e.Channel, e.Nick, r.isSelf(e.Nick)) {
		return
	}
	r.statusNotice(e.Channel, fmt.Sprintf("*%s* has left the channel (%s)", e.Nick, e.Reason))
}

func (r *Relay) handleKick(e IRCKick) {
	self := r.isSelf(e.Nick)
	notify := r.members.OnPart(e.Channel, e.Nick, self)

	if self {
		// On kick, rejoin the channel
		r.irc.Join(e.Channel)
		return
	}

	if notify {
		r.statusNotice(e.Channel, fmt.Sprintf("*%s* was kicked by %s (%s)", e.Nick, e.By, e.Reason))
	}
}

func (r *Relay) handleQuit(e IRCQuit) {
	if r.isSelf(e.Nick) {
		return
	}

	channels := e.Channels
	if channels == nil {
		channels = r.members.ChannelsOf(e.Nick)
	}

	for _, channel := range r.members.OnQuit(e.Nick, channels) {
		r.statusNotice(channel, fmt.Sprintf("*%s* has quit (%s)", e.Nick, e.Reason))
	}
}

func (r *Relay) handleNick(e IRCNick) {
	channels := e.Channels
	if channels == nil {
		channels = r.members.ChannelsOf(e.Old)
	}

	for _, channel := range r.members.OnNickChange(e.Old, e.New, channels) {
		r.statusNotice(channel, fmt.Sprintf("*%s* is now known as %s", e.Old, e.New))
	}
}

func (r *Relay) handleInvite(e IRCInvite) {
	if _, ok := r.channels.DiscordChannel(e.Channel); !ok {
		r.log.WithFields(log.Fields{
			"channel": e.Channel,
			"from":    e.From,
		}).Debugln("Channel not found in config, not joining")
		return
	}

	r.log.WithField("channel", e.Channel).Debugln("Joining channel after invite")
	r.irc.Join(e.Channel)
}

// statusNotice sends text as it is to the Discord channel mapped to ircChannel.
func (r *Relay) statusNotice(ircChannel, text string) {
	if !r.config.IRCStatusNotices {
		return
	}

	channel, _, ok := r.findDiscordChannel(ircChannel)
	if !ok {
		return
	}

	r.log.WithFields(log.Fields{
		"irc":     ircChannel,
		"discord": "#" + channel.Name,
		"text":    text,
	}).Debugln("Sending status notice to Discord")
	r.discordOut.SendText(channel.ID, text)
}

func (r *Relay) findDiscordChannel(ircChannel string) (*discordgo.Channel, *discordgo.Guild, bool) {
	ref, ok := r.channels.DiscordChannel(ircChannel)
	if !ok {
		r.log.WithField("channel", ircChannel).Debugln("Ignoring event from an unmapped IRC channel.")
		return nil, nil, false
	}

	channel, guild, ok := r.discord.FindChannel(ref)
	if !ok {
		r.log.WithField("channel", ref).Infoln("Tried to send a message to a channel the bot isn't in")
		return nil, nil, false
	}

	return channel, guild, true
}

func (r *Relay) isSelf(nick string) bool {
	return strings.EqualFold(nick, r.irc.GetNick())
}

func (r *Relay) isIgnoredIRCUser(nick, source string) bool {
	if r.store != nil && r.store.IsIgnored(commands.IRC, nick) {
		return true
	}

	for _, g := range r.config.IRCIgnores {
		if g.Match(source) {
			return true
		}
	}
	return false
}

func (r *Relay) isIgnoredDiscordUser(u *discordgo.User) bool {
	names := discordNames(u)
	if r.store != nil && r.store.IsIgnored(commands.Discord, names...) {
		return true
	}

	for _, g := range r.config.DiscordIgnores {
		for _, name := range names {
			if g.Match(name) {
				return true
			}
		}
	}
	return false
}

// discordIdentities lists the names that identify a Discord user uniquely.
// Only these are checked against the admin list.
func discordIdentities(u *discordgo.User) []string {
	return []string{u.ID, u.Username + "#" + u.Discriminator}
}

// discordNames lists every name a Discord user may be ignored by, including
// the bare username.
func discordNames(u *discordgo.User) []string {
	return append(discordIdentities(u), u.Username)
}

// rawCommand joins the parts of a command into a protocol line. The last
// part becomes a trailing parameter if it needs to be one.
func rawCommand(parts []string) string {
	if len(parts) == 0 {
		return ""
	}

	out := append([]string(nil), parts...)
	last := out[len(out)-1]
	if len(out) > 1 && (last == "" || strings.ContainsRune(last, ' ') || last[0] == ':') {
		out[len(out)-1] = ":" + last
	}
	return strings.Join(out, " ")
}

// Replace everyone and here - https://git.io/Je1yi
func escapeMassMentions(text string) string {
	text = strings.ReplaceAll(text, "@everyone", "@\u200beveryone")
	return strings.ReplaceAll(text, "@here", "@\u200bhere")
}

// massMentionEscaper defuses @everyone and @here in everything sent to Discord.
type massMentionEscaper struct {
	sender
}

func (m massMentionEscaper) SendText(target, text string) {
	m.sender.SendText(target, escapeMassMentions(text))
}
