package bridge

import "github.com/matterbridge/discordgo"

// An Event is something that happened on one of the two networks.
// The set of events is closed; see Relay.Dispatch.
type Event interface {
	event()
}

// DiscordMessage is a chat message sent to IRC (from Discord)
type DiscordMessage struct {
	*discordgo.Message
	ChannelName string           // without the leading "#"
	Guild       *discordgo.Guild // may be nil, i.e. when the guild is not cached
}

// MessageKind distinguishes the IRC message types that are relayed.
type MessageKind int

// IRC message kinds
const (
	Privmsg MessageKind = iota
	Notice
	Action
)

// IRCMessage is a chat message sent to Discord (from IRC)
type IRCMessage struct {
	Nick    string
	Source  string // nick!user@host
	Channel string
	Text    string
	Kind    MessageKind
}

// IRCRegistered is sent once the IRC server has accepted the connection.
type IRCRegistered struct{}

// IRCJoin is sent when someone, possibly the bridge, joins a channel.
type IRCJoin struct {
	Channel string
	Nick    string
}

// IRCPart is sent when someone, possibly the bridge, leaves a channel.
type IRCPart struct {
	Channel string
	Nick    string
	Reason  string
}

// IRCKick is sent when someone is kicked from a channel.
type IRCKick struct {
	Channel string
	Nick    string
	By      string
	Reason  string
}

// IRCQuit is sent when someone disconnects. If Channels is nil, the
// channels they were tracked in are used.
type IRCQuit struct {
	Nick     string
	Reason   string
	Channels []string
}

// IRCNick is sent when someone changes nickname. If Channels is nil, the
// channels they were tracked in are used.
type IRCNick struct {
	Old      string
	New      string
	Channels []string
}

// IRCNames carries the complete member list of a channel.
type IRCNames struct {
	Channel string
	Nicks   []string
}

// IRCInvite is sent when someone invites the bridge to a channel.
type IRCInvite struct {
	Channel string
	From    string
}

func (DiscordMessage) event() {}
func (IRCMessage) event()     {}
func (IRCRegistered) event()  {}
func (IRCJoin) event()        {}
func (IRCPart) event()        {}
func (IRCKick) event()        {}
func (IRCQuit) event()        {}
func (IRCNick) event()        {}
func (IRCNames) event()       {}
func (IRCInvite) event()      {}
