package ircf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToIRC(t *testing.T) {
	cases := []struct {
		Message  string
		Input    string
		Expected string
	}{
		{"plain", "hello world", "hello world"},
		{"bold", "**text**", "\x02text\x02"},
		{"italics", "*text*", "\x1dtext\x1d"},
		{"underscore italics", "_text_", "\x1dtext\x1d"},
		{"snake case", "snake_case_name", "snake_case_name"},
		{"underline", "__text__", "\x1ftext\x1f"},
		{"bold italics", "***text***", "\x02\x1dtext\x1d\x02"},
		{"strikethrough", "~~text~~", "\x1etext\x1e"},
		{"spoiler", "||text||", "\x0301,01text\x03"},
		{"inline code", "see `**not bold**`", "see `**not bold**`"},
		{"code block", "```\n*x*\n```", "```\n*x*\n```"},
		{"code beside markup", "`*x*` and *y*", "`*x*` and \x1dy\x1d"},
		{"code in spoiler", "||`a`||", "\x0301,01`a`\x03"},
		{"code holding placeholder bytes", "`\x000\x00` **b**", "`\x000\x00` \x02b\x02"},
		{"action", "_waves_", "\x1dwaves\x1d"},
		{"mentions", "hi @Al, <@101> and @admins", "hi @Al, <@101> and @admins"},
		{"underscored names", "@cool_guy_99 :big_smile: <:party_time:300>", "@cool_guy_99 :big_smile: <:party_time:300>"},
	}

	for _, c := range cases {
		t.Run(c.Message, func(t *testing.T) {
			assert.Equal(t, c.Expected, ToIRC(c.Input))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, text := range []string{"**bold**", "__underline__", "*it*", "~~gone~~", "||secret||", "plain :party:"} {
		assert.Equal(t, text, ToDiscord(ToIRC(text)))
	}
}
