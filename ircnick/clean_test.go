package ircnick

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	cases := []struct {
		Input    string
		Expected string
	}{
		{"relay", "relay"},
		{"relay[bot]", "relay[bot]"},
		{"9lives", "_9lives"},
		{"-dash", "_-dash"},
		{"two words", "two_words"},
		{"café", "cafe"},
		{"", "_"},
	}

	for _, c := range cases {
		t.Run(c.Input, func(t *testing.T) {
			assert.Equal(t, c.Expected, Clean(c.Input))
		})
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("DiscordBot"))
	assert.False(t, Valid("Discord Bot"))
	assert.False(t, Valid(""))
}
