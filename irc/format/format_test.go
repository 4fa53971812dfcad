package ircf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrip(t *testing.T) {
	assert.Equal(t, "b c d e", StripCodes("\x02b\x02 \x0304,07c\x03 \x1ed\x1e \x1d\x16e\x0f"))
	assert.Equal(t, "<@101> :party:", StripCodes("\x02<@101>\x02 \x0303:party:\x03"))
}

func TestParse(t *testing.T) {
	cases := []struct {
		Message  string
		Input    string
		Expected []Block
	}{
		{"plain", "hello", []Block{NewBlock("hello")}},
		{"bold toggles", "\x02bold\x02 plain", []Block{
			NewBlock("bold", CharBold),
			NewBlock(" plain"),
		}},
		{"strikethrough", "\x1edone\x1e", []Block{NewBlock("done", CharStrikethrough)}},
		{"foreground keeps background", "\x034,2a\x035b", []Block{
			NewColorBlock("a", 4, 2),
			NewColorBlock("b", 5, 2),
		}},
		{"bare colour code clears", "\x034,2a\x03b", []Block{
			NewColorBlock("a", 4, 2),
			NewBlock("b"),
		}},
		{"comma without background", "\x034,x", []Block{NewColorBlock(",x", 4, -1)}},
		{"two digit limit", "\x03123", []Block{NewColorBlock("3", 12, -1)}},
		{"hex colour skipped", "\x04FF0000red\x04 x", []Block{
			NewBlock("red"),
			NewBlock(" x"),
		}},
		{"hex background skipped", "\x04ff0000,00FF00x", []Block{NewBlock("x")}},
		{"monospace dropped", "\x11code\x11", []Block{NewBlock("code")}},
		{"reset", "\x02\x034,4a\x0fb", []Block{
			NewColorBlock("a", 4, 4, CharBold),
			NewBlock("b"),
		}},
		{"reverse", "\x16r\x16", []Block{NewBlock("r", CharReverseColor)}},
		{"reverse swaps colours", "\x034,2\x16x", []Block{NewColorBlock("x", 2, 4, CharReverseColor)}},
		{"reverse foreground only", "\x034\x16x", []Block{NewColorBlock("x", 0, 4, CharReverseColor)}},
	}

	for _, c := range cases {
		t.Run(c.Message, func(t *testing.T) {
			assert.Equal(t, c.Expected, Parse(c.Input))
		})
	}
}

func TestParseEmpty(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("\x02\x0304\x0f"))
}
