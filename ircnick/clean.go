// Package ircnick validates and cleans IRC nicknames.
package ircnick

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// Clean transliterates nick to ASCII and replaces characters that are not
// allowed in nicknames with an underscore. A leading digit or dash is
// prefixed with an underscore.
func Clean(nick string) string {
	nick = strings.TrimSpace(unidecode.Unidecode(nick))
	if nick == "" {
		return "_"
	}

	if !IsNickStart(nick[0]) {
		nick = "_" + nick
	}

	cleaned := []byte(nick)
	for i, c := range cleaned {
		if !IsNickChar(c) {
			cleaned[i] = '_'
		}
	}

	return string(cleaned)
}

// Valid reports whether nick is a well-formed nickname.
func Valid(nick string) bool {
	return nick != "" && Clean(nick) == nick
}
