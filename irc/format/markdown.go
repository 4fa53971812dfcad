package ircf

import "strings"

// ToDiscord converts IRC styling in text to Discord markdown.
func ToDiscord(text string) string {
	return StripCodes(BlocksToMarkdown(Parse(text)))
}

// A marker is a markdown delimiter and the block style it stands for.
type marker struct {
	delim string
	on    func(Block) bool
}

// Markers in nesting order, outermost first.
var markers = []marker{
	{"||", Block.Spoiler},
	{"*", Block.Italicised},
	{"**", func(b Block) bool { return b.Bold }},
	{"__", func(b Block) bool { return b.Underline }},
	{"~~", func(b Block) bool { return b.Strikethrough }},
}

// BlocksToMarkdown renders blocks as Discord markdown. Text whose foreground
// matches its background becomes a spoiler. Other colours are dropped.
func BlocksToMarkdown(blocks []Block) string {
	var md strings.Builder

	prev := Empty
	for i := 0; i <= len(blocks); i++ {
		block := Empty
		if i < len(blocks) {
			block = blocks[i]
		}

		// Close innermost first, then open outermost first
		for j := len(markers) - 1; j >= 0; j-- {
			if m := markers[j]; m.on(prev) && !m.on(block) {
				md.WriteString(m.delim)
			}
		}
		for _, m := range markers {
			if !m.on(prev) && m.on(block) {
				md.WriteString(m.delim)
			}
		}

		md.WriteString(block.Text)
		prev = block
	}

	return md.String()
}
