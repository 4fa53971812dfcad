package bridge

import "regexp"

// Default message formats. See Format for the placeholders each one gets.
const (
	DefaultIRCTextFormat        = "<{$displayUsername}> {$text}"
	DefaultURLAttachmentFormat  = "<{$displayUsername}> {$attachmentURL}"
	DefaultCommandPreludeFormat = "Command sent from {$side} by {$nickname}:"
	DefaultDiscordFormat        = "**<{$author}>** {$withMentions}"
)

// Format holds the templates used for outbound messages.
//
// Every template may use author, nickname, text, discordChannel and ircChannel.
// IRCText and URLAttachment also get displayUsername (the colourised nickname),
// URLAttachment gets attachmentURL, Discord gets withMentions and
// CommandPrelude gets side ("Discord" or "IRC").
type Format struct {
	IRCText       string
	URLAttachment string
	Discord       string

	// CommandPrelude is sent before a forwarded command. Empty disables it.
	CommandPrelude string
}

// withDefaults fills in the empty message templates. CommandPrelude is left
// alone, since an empty prelude is meaningful.
func (f Format) withDefaults() Format {
	if f.IRCText == "" {
		f.IRCText = DefaultIRCTextFormat
	}
	if f.URLAttachment == "" {
		f.URLAttachment = DefaultURLAttachmentFormat
	}
	if f.Discord == "" {
		f.Discord = DefaultDiscordFormat
	}
	return f
}

var patternRegex = regexp.MustCompile(`{\$(.+?)}`)

// Substitute replaces each {$name} in template with patterns[name].
// Placeholders without a pattern are left as they are.
func Substitute(template string, patterns map[string]string) string {
	return patternRegex.ReplaceAllStringFunc(template, func(match string) string {
		if value, ok := patterns[match[2:len(match)-1]]; ok {
			return value
		}
		return match
	})
}
