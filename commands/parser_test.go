package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	cases := []struct {
		Input    string
		Expected Command
	}{
		{"!shrug", Command{Name: "shrug", Args: []string{}}},
		{"!ignore add  irc   bob", Command{Name: "ignore", Args: []string{"add", "irc", "bob"}}},
		{"§list admin", Command{Name: "list", Args: []string{"admin"}}},
		{"   ", Command{}},
	}

	for _, c := range cases {
		t.Run(c.Input, func(t *testing.T) {
			assert.Equal(t, c.Expected, Parse(c.Input))
		})
	}
}

func TestIsCommand(t *testing.T) {
	triggers := []string{"!", "."}

	assert.True(t, IsCommand("!help", triggers))
	assert.True(t, IsCommand(".", triggers))
	assert.False(t, IsCommand("hello!", triggers))
	assert.False(t, IsCommand("", triggers))
	assert.False(t, IsCommand("!help", nil))
	assert.True(t, IsCommand("§x", []string{"§"}))
}
