package ircf

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	codeBlockRegex  = regexp.MustCompile("(?s)```.*?```|`[^`]+`")
	placeholder     = regexp.MustCompile("\x00(\\d+)\x00")
	boldItalicRegex = regexp.MustCompile(`\*\*\*(.+?)\*\*\*`)
	boldRegex       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	underlineRegex  = regexp.MustCompile(`__(.+?)__`)
	italicRegex     = regexp.MustCompile(`\*(.+?)\*`)
	underItalic     = regexp.MustCompile(`\b_(.+?)_\b`)
	strikeRegex     = regexp.MustCompile(`~~(.+?)~~`)
	spoilerRegex    = regexp.MustCompile(`\|\|(.+?)\|\|`)
)

// ToIRC converts Discord markdown in text to IRC control codes.
//
// Code spans and blocks are passed through untouched. Spoilers are rendered
// black on black.
func ToIRC(text string) string {
	var code []string
	text = codeBlockRegex.ReplaceAllStringFunc(text, func(match string) string {
		code = append(code, match)
		return "\x00" + strconv.Itoa(len(code)-1) + "\x00"
	})

	bold := string(CharBold)
	italic := string(CharItalics)
	underline := string(CharUnderline)
	strike := string(CharStrikethrough)

	text = boldItalicRegex.ReplaceAllString(text, bold+italic+"$1"+italic+bold)
	text = boldRegex.ReplaceAllString(text, bold+"$1"+bold)
	text = underlineRegex.ReplaceAllString(text, underline+"$1"+underline)
	text = italicRegex.ReplaceAllString(text, italic+"$1"+italic)
	text = underItalic.ReplaceAllString(text, italic+"$1"+italic)
	text = strikeRegex.ReplaceAllString(text, strike+"$1"+strike)
	text = spoilerRegex.ReplaceAllString(text, string(CharColor)+"01,01$1"+string(CharColor))

	if len(code) == 0 {
		return text
	}

	return placeholder.ReplaceAllStringFunc(text, func(match string) string {
		i, err := strconv.Atoi(strings.Trim(match, "\x00"))
		if err != nil || i >= len(code) {
			return match
		}
		return code[i]
	})
}
