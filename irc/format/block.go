package ircf

// A Block is a run of text sharing the same IRC styling. Color and
// Highlight are mIRC colour numbers, or -1 when unset.
type Block struct {
	Bold, Italic, Underline, Strikethrough, Reverse bool

	Color, Highlight int
	Text             string
}

// Empty is an unstyled block without text.
var Empty = Block{Color: -1, Highlight: -1}

// NewBlock returns a block with the styles of the given control characters.
func NewBlock(text string, styles ...rune) Block {
	b := Empty
	b.Text = text
	for _, code := range styles {
		b.SetField(code, true)
	}
	return b
}

// NewColorBlock is like NewBlock but also sets the foreground and background colours.
func NewColorBlock(text string, color, highlight int, styles ...rune) Block {
	b := NewBlock(text, styles...)
	b.Color, b.Highlight = color, highlight
	return b
}

// Spoiler reports whether the block is coloured to hide its text.
func (b Block) Spoiler() bool {
	return b.Color != -1 && b.Color == b.Highlight
}

// Italicised reports whether the block renders as italics on Discord.
// Some IRC clients show reverse as italics, so it does too.
func (b Block) Italicised() bool {
	return b.Italic || b.Reverse
}

func (b *Block) style(code rune) *bool {
	switch code {
	case CharBold:
		return &b.Bold
	case CharItalics:
		return &b.Italic
	case CharUnderline:
		return &b.Underline
	case CharStrikethrough:
		return &b.Strikethrough
	case CharReverseColor:
		return &b.Reverse
	}
	return nil
}

// SetField sets a style by its control character. Other characters are ignored.
func (b *Block) SetField(code rune, val bool) {
	if field := b.style(code); field != nil {
		*field = val
	}
}

// GetField returns a style by its control character.
func (b Block) GetField(code rune) bool {
	if field := b.style(code); field != nil {
		return *field
	}
	return false
}
