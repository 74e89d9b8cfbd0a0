package render

import (
	"github.com/lixenwraith/termdeck/terminal"
)

// Attr is shared with the terminal driver so attributes cross the sink boundary unchanged
type Attr = terminal.Attr

const (
	AttrNone      = terminal.AttrNone
	AttrBold      = terminal.AttrBold
	AttrDim       = terminal.AttrDim
	AttrItalic    = terminal.AttrItalic
	AttrUnderline = terminal.AttrUnderline
	AttrBlink     = terminal.AttrBlink
	AttrReverse   = terminal.AttrReverse
	AttrHidden    = terminal.AttrHidden
)

// Cell is one character position; equality is exact on all fields
type Cell struct {
	Rune  rune
	Fg    Color
	Bg    Color
	Attrs Attr
}

// DefaultCell is a space on the default background
var DefaultCell = Cell{Rune: ' ', Fg: DefaultFg, Bg: DefaultBg}

// Visible reports whether the cell shows ink: a non-space glyph with non-zero fg alpha
func (c Cell) Visible() bool {
	return visible(c.Rune, c.Fg)
}

func visible(r rune, fg Color) bool {
	return r != ' ' && r != 0 && fg.A != 0
}
