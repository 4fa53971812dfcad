// Package ircf converts message styling between IRC control codes and
// Discord markdown.
//
// Parsing is based on https://www.npmjs.com/package/irc-formatting 1.0.0-rc3,
// with colour codes following https://modern.ircdocs.horse/formatting.html
package ircf

import (
	"regexp"
	"strconv"
	"strings"
)

// Control characters defined in https://modern.ircdocs.horse/formatting.html
const (
	CharBold          rune = '\x02'
	CharItalics       rune = '\x1D'
	CharUnderline     rune = '\x1F'
	CharStrikethrough rune = '\x1E'
	CharMonospace     rune = '\x11'
	CharColor         rune = '\x03'
	CharHex           rune = '\x04'
	CharReverseColor  rune = '\x16'
	CharReset         rune = '\x0F'
)

var colorRegex = regexp.MustCompile(`\x03(\d\d?)?(?:,(\d\d?))?`)

var replacer = strings.NewReplacer(
	string(CharBold), "",
	string(CharItalics), "",
	string(CharUnderline), "",
	string(CharStrikethrough), "",
	string(CharMonospace), "",
	string(CharColor), "",
	string(CharHex), "",
	string(CharReverseColor), "",
	string(CharReset), "",
)

// StripCodes removes every formatting code from text.
func StripCodes(text string) string {
	return replacer.Replace(colorRegex.ReplaceAllString(text, ""))
}

// StripColor removes colour codes from text, keeping other styling.
func StripColor(text string) string {
	return colorRegex.ReplaceAllString(text, "")
}

// Parse splits IRC text into runs of equally styled text.
//
// Colour codes follow mIRC: "\x03" alone clears the colours, "\x03F" sets
// the foreground and "\x03F,B" both. Hex colours are skipped. Monospace has
// no Discord equivalent outside code spans and is dropped.
func Parse(text string) []Block {
	p := parser{style: Empty}

	for i := 0; i < len(text); i++ {
		switch c := rune(text[i]); c {
		case CharBold, CharItalics, CharUnderline, CharStrikethrough:
			p.flush()
			p.style.SetField(c, !p.style.GetField(c))

		case CharColor:
			p.flush()
			i = p.color(text, i+1) - 1

		case CharHex:
			p.flush()
			i = skipHex(text, i+1) - 1

		case CharReverseColor:
			p.flush()
			p.reverse()

		case CharReset:
			p.flush()
			p.style = Empty

		case CharMonospace:
			p.flush()

		default:
			p.text.WriteByte(text[i])
		}
	}
	p.flush()

	return p.blocks
}

type parser struct {
	blocks []Block
	style  Block
	text   strings.Builder
}

// flush ends the current run of text, if any.
func (p *parser) flush() {
	if p.text.Len() == 0 {
		return
	}

	b := p.style
	b.Text = p.text.String()
	p.blocks = append(p.blocks, b)
	p.text.Reset()
}

// color applies the colour code whose digits start at i, returning the
// index just past it.
func (p *parser) color(text string, i int) int {
	fg, i, ok := readColor(text, i)
	if !ok {
		p.style.Color, p.style.Highlight = -1, -1
		return i
	}
	p.style.Color = fg

	if i+1 < len(text) && text[i] == ',' {
		if bg, j, ok := readColor(text, i+1); ok {
			p.style.Highlight = bg
			return j
		}
	}
	return i
}

func (p *parser) reverse() {
	if p.style.Color != -1 {
		p.style.Color, p.style.Highlight = p.style.Highlight, p.style.Color
		if p.style.Color == -1 {
			p.style.Color = 0
		}
	}
	p.style.Reverse = !p.style.Reverse
}

// readColor reads a one or two digit colour number at i.
func readColor(text string, i int) (color, next int, ok bool) {
	n := 0
	for n < 2 && i+n < len(text) && isDigit(text[i+n]) {
		n++
	}
	if n == 0 {
		return -1, i, false
	}

	color, _ = strconv.Atoi(text[i : i+n])
	return color, i + n, true
}

// skipHex returns the index past a "RRGGBB[,RRGGBB]" hex colour at i.
func skipHex(text string, i int) int {
	isHex := func(at int) bool {
		if at+6 > len(text) {
			return false
		}
		for _, c := range []byte(text[at : at+6]) {
			if !isDigit(c) && (c|0x20 < 'a' || c|0x20 > 'f') {
				return false
			}
		}
		return true
	}

	if !isHex(i) {
		return i
	}
	i += 6
	if i < len(text) && text[i] == ',' && isHex(i+1) {
		i += 7
	}
	return i
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
