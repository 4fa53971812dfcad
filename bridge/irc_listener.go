package bridge

import (
	"crypto/tls"
	stdlog "log"
	"strings"
	"sync"

	"github.com/ircbridge/discord-irc/commands"
	irc "github.com/qaisjp/go-ircevent"
	log "github.com/sirupsen/logrus"
)

// Channel membership prefixes that may come before a nick in a NAMES reply
const namesPrefixes = "~&@%+"

type ircListener struct {
	*irc.Connection
	bridge *Bridge

	namesMu sync.Mutex
	names   map[string][]string // NAMES replies still being received, by channel

	log *log.Entry
}

func newIRCListener(dib *Bridge) *ircListener {
	irccon := irc.IRC(dib.Config.Nickname, dib.Config.Nickname)
	listener := &ircListener{
		Connection: irccon,
		bridge:     dib,
		names:      make(map[string][]string),
		log:        log.WithField("prefix", "irc"),
	}

	if !dib.Config.NoTLS {
		irccon.UseTLS = true
		irccon.TLSConfig = &tls.Config{
			InsecureSkipVerify: dib.Config.InsecureSkipVerify,
		}
	}
	irccon.Password = dib.Config.IRCServerPass
	irccon.Log = stdlog.New(listener.log.WriterLevel(log.DebugLevel), "", 0)
	listener.SetDebugMode(dib.Config.Debug)

	// Welcome event
	irccon.AddCallback("001", listener.OnWelcome)

	irccon.AddCallback("PRIVMSG", listener.OnPrivateMessage)
	irccon.AddCallback("CTCP_ACTION", listener.OnPrivateMessage)
	irccon.AddCallback("NOTICE", listener.OnPrivateMessage)

	irccon.AddCallback("JOIN", listener.OnJoin)
	irccon.AddCallback("PART", listener.OnPart)
	irccon.AddCallback("KICK", listener.OnKick)
	irccon.AddCallback("QUIT", listener.OnQuit)
	irccon.AddCallback("NICK", listener.OnNick)
	irccon.AddCallback("INVITE", listener.OnInvite)

	// Channel names come in one or more 353s, then a 366
	irccon.AddCallback("353", listener.OnNamesReply)
	irccon.AddCallback("366", listener.OnEndOfNames)

	irccon.AddCallback("ERROR", func(e *irc.Event) {
		listener.log.WithField("message", e.Message()).Errorln("Received error from IRC server")
	})

	return listener
}

func (i *ircListener) SetDebugMode(debug bool) {
	i.VerboseCallbackHandler = debug
	i.Debug = debug
}

func (i *ircListener) Side() commands.Side {
	return commands.IRC
}

// SendText sends text to target as a single PRIVMSG.
func (i *ircListener) SendText(target, text string) {
	text = newlineRegex.ReplaceAllString(text, " ")
	if strings.TrimSpace(text) == "" {
		return
	}
	i.Privmsg(target, text)
}

func (i *ircListener) OnWelcome(e *irc.Event) {
	i.bridge.push(IRCRegistered{})
}

func (i *ircListener) OnPrivateMessage(e *irc.Event) {
	if len(e.Arguments) == 0 || e.Nick == "" {
		// Server notices, e.g. "*** Looking up your hostname"
		return
	}

	// Ignore private messages
	target := e.Arguments[0]
	if !isChannel(target) {
		return
	}

	kind := Privmsg
	switch e.Code {
	case "CTCP_ACTION":
		kind = Action
	case "NOTICE":
		kind = Notice
	}

	i.bridge.push(IRCMessage{
		Nick:    e.Nick,
		Source:  e.Source,
		Channel: target,
		Text:    e.Message(),
		Kind:    kind,
	})
}

func (i *ircListener) OnJoin(e *irc.Event) {
	if len(e.Arguments) == 0 {
		return
	}

	i.bridge.push(IRCJoin{
		Channel: e.Arguments[0],
		Nick:    e.Nick,
	})
}

func (i *ircListener) OnPart(e *irc.Event) {
	if len(e.Arguments) == 0 {
		return
	}

	var reason string
	if len(e.Arguments) > 1 {
		reason = e.Arguments[1]
	}

	i.bridge.push(IRCPart{
		Channel: e.Arguments[0],
		Nick:    e.Nick,
		Reason:  reason,
	})
}

func (i *ircListener) OnKick(e *irc.Event) {
	if len(e.Arguments) < 2 {
		return
	}

	var reason string
	if len(e.Arguments) > 2 {
		reason = e.Arguments[2]
	}

	i.bridge.push(IRCKick{
		Channel: e.Arguments[0],
		Nick:    e.Arguments[1],
		By:      e.Nick,
		Reason:  reason,
	})
}

func (i *ircListener) OnQuit(e *irc.Event) {
	i.bridge.push(IRCQuit{
		Nick:   e.Nick,
		Reason: e.Message(),
	})
}

func (i *ircListener) OnNick(e *irc.Event) {
	i.bridge.push(IRCNick{
		Old: e.Nick,
		New: e.Message(),
	})
}

func (i *ircListener) OnInvite(e *irc.Event) {
	i.bridge.push(IRCInvite{
		Channel: e.Message(),
		From:    e.Nick,
	})
}

// OnNamesReply buffers the nicks of a RPL_NAMREPLY:
// "<me> <symbol> <channel> :[prefix]<nick> ..."
func (i *ircListener) OnNamesReply(e *irc.Event) {
	if len(e.Arguments) < 4 {
		return
	}
	channel := strings.ToLower(e.Arguments[2])

	i.namesMu.Lock()
	defer i.namesMu.Unlock()

	for _, nick := range strings.Fields(e.Arguments[3]) {
		if nick = strings.TrimLeft(nick, namesPrefixes); nick != "" {
			i.names[channel] = append(i.names[channel], nick)
		}
	}
}

// OnEndOfNames publishes the buffered names of a channel:
// "<me> <channel> :End of /NAMES list."
func (i *ircListener) OnEndOfNames(e *irc.Event) {
	if len(e.Arguments) < 2 {
		return
	}
	channel := strings.ToLower(e.Arguments[1])

	i.namesMu.Lock()
	nicks := i.names[channel]
	delete(i.names, channel)
	i.namesMu.Unlock()

	i.log.WithFields(log.Fields{
		"channel": channel,
		"members": len(nicks),
	}).Debugln("Received channel names")

	i.bridge.push(IRCNames{
		Channel: channel,
		Nicks:   nicks,
	})
}

func isChannel(target string) bool {
	return target != "" && strings.ContainsRune("#&+!", rune(target[0]))
}
