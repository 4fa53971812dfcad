package ircnick

// Character classes from RFC 2812 section 2.3.1:
//
//	nickname = ( letter / special ) *( letter / digit / special / "-" )
//	special  = "[" / "]" / "\" / "`" / "_" / "^" / "{" / "|" / "}"

// IsLetter reports whether c is an ASCII letter.
func IsLetter(c byte) bool { return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') }

// IsDigit reports whether c is an ASCII digit.
func IsDigit(c byte) bool { return '0' <= c && c <= '9' }

// IsSpecial reports whether c is one of the special nickname characters.
func IsSpecial(c byte) bool {
	switch c {
	case '[', ']', '\\', '`', '_', '^', '{', '|', '}':
		return true
	}
	return false
}

// IsNickChar reports whether c may appear in a nickname.
func IsNickChar(c byte) bool {
	return IsLetter(c) || IsDigit(c) || IsSpecial(c) || c == '-'
}

// IsNickStart reports whether a nickname may begin with c.
func IsNickStart(c byte) bool {
	return IsLetter(c) || IsSpecial(c)
}
