package sink

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/termdeck/render"
)

// Tcell writes changes into a tcell.Screen and shows them
type Tcell struct {
	screen tcell.Screen
}

// NewTcell wraps an initialized screen
func NewTcell(screen tcell.Screen) *Tcell {
	return &Tcell{screen: screen}
}

func (t *Tcell) Present(changes []render.CellChange) error {
	for _, ch := range changes {
		r := ch.Cell.Rune
		if r == 0 || ch.Cell.Attrs&render.AttrHidden != 0 {
			r = ' '
		}
		t.screen.SetContent(ch.X, ch.Y, r, nil, Style(ch.Cell))
	}
	t.screen.Show()
	return nil
}

// Sync forces tcell to repaint every cell
func (t *Tcell) Sync() error {
	t.screen.Sync()
	return nil
}

// Screen returns the wrapped screen
func (t *Tcell) Screen() tcell.Screen {
	return t.screen
}

var tcellAttrs = [...]struct {
	attr render.Attr
	mask tcell.AttrMask
}{
	{render.AttrBold, tcell.AttrBold},
	{render.AttrDim, tcell.AttrDim},
	{render.AttrItalic, tcell.AttrItalic},
	{render.AttrUnderline, tcell.AttrUnderline},
	{render.AttrBlink, tcell.AttrBlink},
	{render.AttrReverse, tcell.AttrReverse},
}

// Style maps a cell's colors and attributes to a tcell style.
// tcell has no conceal attribute, Present blanks hidden glyphs instead
func Style(c render.Cell) tcell.Style {
	var mask tcell.AttrMask
	for _, a := range tcellAttrs {
		if c.Attrs&a.attr != 0 {
			mask |= a.mask
		}
	}
	return tcell.StyleDefault.
		Foreground(ToTcell(c.Fg)).
		Background(ToTcell(c.Bg)).
		Attributes(mask)
}

// ToTcell converts to an RGB tcell color, dropping alpha
func ToTcell(c render.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// FromTcell converts an opaque tcell color; ColorDefault maps to the default background
func FromTcell(c tcell.Color) render.Color {
	if c == tcell.ColorDefault {
		return render.DefaultBg
	}
	r, g, b := c.RGB()
	return render.Opaque(uint8(r), uint8(g), uint8(b))
}
