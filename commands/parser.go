// Package commands handles chat commands addressed to the bridge itself,
// and the admin and ignore lists those commands manage.
package commands

import (
	"strings"
	"unicode/utf8"
)

// A Command is a parsed command invocation, such as "!ignore add irc bob".
type Command struct {
	Name string
	Args []string
}

// Parse splits text into a command name, without its trigger character,
// and arguments. Blank text gives a zero Command.
func Parse(text string) Command {
	words := strings.Fields(text)
	if len(words) == 0 {
		return Command{}
	}

	_, size := utf8.DecodeRuneInString(words[0])
	return Command{
		Name: words[0][size:],
		Args: words[1:],
	}
}

// IsCommand reports whether text starts with one of the trigger characters.
func IsCommand(text string, triggers []string) bool {
	if text == "" {
		return false
	}

	first, _ := utf8.DecodeRuneInString(text)
	for _, t := range triggers {
		if t == string(first) {
			return true
		}
	}
	return false
}
