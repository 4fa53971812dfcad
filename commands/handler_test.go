package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type replies []string

func (r *replies) reply(text string) { *r = append(*r, text) }

func TestHandlerShrug(t *testing.T) {
	h := NewHandler(NewStore())

	var out replies
	assert.True(t, h.Run(Parse("!shrug"), Sender{Side: IRC, Names: []string{"bob"}}, out.reply))
	assert.Equal(t, replies{Shrug}, out)
}

func TestHandlerUnknown(t *testing.T) {
	h := NewHandler(NewStore())

	var out replies
	assert.False(t, h.Run(Parse("!weather london"), Sender{Side: IRC}, out.reply))
	assert.Empty(t, out)
}

func TestHandlerIgnoreRequiresAdmin(t *testing.T) {
	store := NewStore("alice")
	h := NewHandler(store)

	var out replies
	assert.True(t, h.Run(Parse("!ignore add irc spammer"), Sender{Side: IRC, Names: []string{"mallory"}}, out.reply))
	assert.Equal(t, replies{"You are not an admin."}, out)
	assert.False(t, store.IsIgnored(IRC, "spammer"))

	out = nil
	assert.True(t, h.Run(Parse("!ignore add irc spammer"), Sender{Side: Discord, Names: []string{"alice", "1234"}}, out.reply))
	assert.Equal(t, replies{"Done."}, out)
	assert.True(t, store.IsIgnored(IRC, "spammer"))
}

func TestHandlerUsage(t *testing.T) {
	h := NewHandler(NewStore("alice"))
	admin := Sender{Side: IRC, Names: []string{"alice"}}

	cases := []struct {
		Input    string
		Expected string
	}{
		{"!ignore add slack bob", "Usage: ignore add|rm irc|discord <users>"},
		{"!ignore", "Usage: ignore add|rm irc|discord <users>"},
		{"!admin promote bob", "Usage: admin add|rm <users>"},
		{"!list", "Usage: list admin|ignore"},
	}

	for _, c := range cases {
		t.Run(c.Input, func(t *testing.T) {
			var out replies
			assert.True(t, h.Run(Parse(c.Input), admin, out.reply))
			assert.Equal(t, replies{c.Expected}, out)
		})
	}
}

func TestHandlerList(t *testing.T) {
	store := NewStore("alice", "bob")
	store.Ignore(Discord, "eve")
	h := NewHandler(store)

	var out replies
	h.Run(Parse("!list admin"), Sender{}, out.reply)
	h.Run(Parse("!list ignore"), Sender{}, out.reply)
	assert.Equal(t, replies{"admin: alice, bob", "irc: ", "discord: eve"}, out)
}
