package ircf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToDiscord(t *testing.T) {
	cases := []struct {
		Message  string
		Input    string
		Expected string
	}{
		{"plain", "hello", "hello"},
		{"bold", "\x02text\x02", "**text**"},
		{"unterminated bold", "\x02open", "**open**"},
		{"italics", "\x1dtext\x1d", "*text*"},
		{"reverse", "\x16text\x16", "*text*"},
		{"underline", "\x1ftext\x1f", "__text__"},
		{"strikethrough", "\x1egone\x1e", "~~gone~~"},
		{"colour dropped", "\x0304red\x03", "red"},
		{"hex colour dropped", "\x04FF0000red\x04", "red"},
		{"spoiler", "\x0301,01secret\x03", "||secret||"},
		{"spoiler in sentence", "everyone\x031,1 dies\x03!", "everyone|| dies||!"},
		{"nested underline", "\x02bold \x1funderline\x1f\x02", "**bold __underline__**"},
		{"nested strikethrough", "\x02a\x1eb\x1e\x02", "**a~~b~~**"},

		// Notices and actions arrive wrapped in * and _
		{"notice", "*server restarting*", "*server restarting*"},
		{"notice with bold", "*\x02hi\x02 there*", "***hi** there*"},
		{"action", "_waves_", "_waves_"},

		{"mentions", "<@101> <@&200> #general", "<@101> <@&200> #general"},
		{"emoji", "<:party:300> <a:dance:301> :plain:", "<:party:300> <a:dance:301> :plain:"},
		{"bold mention", "\x02<@101>\x02", "**<@101>**"},
	}

	for _, c := range cases {
		t.Run(c.Message, func(t *testing.T) {
			assert.Equal(t, c.Expected, ToDiscord(c.Input))
		})
	}
}
