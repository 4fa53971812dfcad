package bridge

import (
	"testing"

	irc "github.com/qaisjp/go-ircevent"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestListener() (*ircListener, chan Event) {
	events := make(chan Event, 8)
	return &ircListener{
		bridge: &Bridge{events: events, stopped: make(chan struct{})},
		names:  make(map[string][]string),
		log:    log.WithField("prefix", "irc"),
	}, events
}

func namesReply(channel, nicks string) *irc.Event {
	return &irc.Event{Code: "353", Arguments: []string{"bridge", "=", channel, nicks}}
}

func TestNamesAccumulate(t *testing.T) {
	l, events := newTestListener()

	l.OnNamesReply(namesReply("#Chan", "@op +voice plain"))
	l.OnNamesReply(namesReply("#chan", "~owner %half &admin"))
	l.OnNamesReply(namesReply("#other", "elsewhere"))
	assert.Empty(t, events)

	l.OnEndOfNames(&irc.Event{Code: "366", Arguments: []string{"bridge", "#CHAN", "End of /NAMES list."}})
	require.Len(t, events, 1)
	assert.Equal(t, IRCNames{
		Channel: "#chan",
		Nicks:   []string{"op", "voice", "plain", "owner", "half", "admin"},
	}, <-events)

	// #other is still being received
	assert.Equal(t, []string{"elsewhere"}, l.names["#other"])
	assert.NotContains(t, l.names, "#chan")
}

func TestNamesEmptyChannel(t *testing.T) {
	l, events := newTestListener()

	l.OnEndOfNames(&irc.Event{Code: "366", Arguments: []string{"bridge", "#empty", "End of /NAMES list."}})
	require.Len(t, events, 1)
	assert.Equal(t, IRCNames{Channel: "#empty"}, <-events)
}

func TestNamesPrefixOnly(t *testing.T) {
	l, _ := newTestListener()

	l.OnNamesReply(namesReply("#chan", "@ +"))
	assert.Empty(t, l.names["#chan"])
}

func TestShortArgumentsIgnored(t *testing.T) {
	l, events := newTestListener()

	l.OnNamesReply(&irc.Event{Code: "353", Arguments: []string{"bridge", "=", "#chan"}})
	l.OnEndOfNames(&irc.Event{Code: "366", Arguments: []string{"bridge"}})
	l.OnJoin(&irc.Event{Code: "JOIN", Nick: "alice"})
	l.OnPart(&irc.Event{Code: "PART", Nick: "alice"})
	l.OnKick(&irc.Event{Code: "KICK", Nick: "op", Arguments: []string{"#chan"}})
	l.OnPrivateMessage(&irc.Event{Code: "PRIVMSG", Nick: "alice"})

	assert.Empty(t, events)
	assert.Empty(t, l.names)
}

func TestJoinPart(t *testing.T) {
	l, events := newTestListener()

	l.OnJoin(&irc.Event{Code: "JOIN", Nick: "alice", Arguments: []string{"#chan"}})
	l.OnPart(&irc.Event{Code: "PART", Nick: "alice", Arguments: []string{"#chan", "bye"}})
	l.OnPart(&irc.Event{Code: "PART", Nick: "bob", Arguments: []string{"#chan"}})

	require.Len(t, events, 3)
	assert.Equal(t, IRCJoin{Channel: "#chan", Nick: "alice"}, <-events)
	assert.Equal(t, IRCPart{Channel: "#chan", Nick: "alice", Reason: "bye"}, <-events)
	assert.Equal(t, IRCPart{Channel: "#chan", Nick: "bob"}, <-events)
}

func TestPrivateMessageKinds(t *testing.T) {
	l, events := newTestListener()

	l.OnPrivateMessage(&irc.Event{Code: "PRIVMSG", Nick: "alice", Source: "alice!a@host", Arguments: []string{"#chan", "hi"}})
	l.OnPrivateMessage(&irc.Event{Code: "CTCP_ACTION", Nick: "alice", Source: "alice!a@host", Arguments: []string{"#chan", "waves"}})
	l.OnPrivateMessage(&irc.Event{Code: "NOTICE", Nick: "alice", Source: "alice!a@host", Arguments: []string{"#chan", "note"}})
	l.OnPrivateMessage(&irc.Event{Code: "PRIVMSG", Nick: "alice", Arguments: []string{"bridge", "secret"}})

	require.Len(t, events, 3)
	assert.Equal(t, Privmsg, (<-events).(IRCMessage).Kind)
	assert.Equal(t, Action, (<-events).(IRCMessage).Kind)
	msg := (<-events).(IRCMessage)
	assert.Equal(t, Notice, msg.Kind)
	assert.Equal(t, "note", msg.Text)
	assert.Equal(t, "#chan", msg.Channel)
}
