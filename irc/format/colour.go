package ircf

import (
	"fmt"
	"unicode/utf16"
)

// mIRC colour numbers.
const (
	White = iota
	Black
	DarkBlue
	DarkGreen
	LightRed
	DarkRed
	Magenta
	Orange
	Yellow
	LightGreen
	Cyan
	LightCyan
	LightBlue
	LightMagenta
	Gray
	LightGray
)

// NickColors is the palette nicknames are coloured from.
var NickColors = []int{
	LightBlue, DarkBlue, LightRed, DarkRed, LightGreen, DarkGreen,
	Magenta, LightMagenta, Orange, Yellow, Cyan, LightCyan,
}

// Wrap colours text, resetting all styling afterwards.
func Wrap(color int, text string) string {
	return fmt.Sprintf("%c%02d%s%c", CharColor, color, text, CharReset)
}

// NickColor picks a palette entry for nick from its first character and
// length, both counted in UTF-16 code units. The same nick always gets
// the same colour.
func NickColor(nick string) int {
	units := utf16.Encode([]rune(nick))
	if len(units) == 0 {
		return NickColors[0]
	}
	return NickColors[(int(units[0])+len(units))%len(NickColors)]
}

// ColorNick wraps nick in its palette colour.
func ColorNick(nick string) string {
	return Wrap(NickColor(nick), nick)
}
