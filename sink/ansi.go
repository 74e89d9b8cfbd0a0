package sink

import (
	"fmt"

	"github.com/lixenwraith/termdeck/render"
	"github.com/lixenwraith/termdeck/terminal"
)

// ANSI writes changes through a raw terminal
type ANSI struct {
	term    terminal.Terminal
	changes []terminal.Change
}

func NewANSI(term terminal.Terminal) *ANSI {
	return &ANSI{term: term, changes: make([]terminal.Change, 0, 1024)}
}

// Present converts cells to the terminal's opaque form and writes them
func (a *ANSI) Present(changes []render.CellChange) error {
	a.changes = a.changes[:0]
	for _, ch := range changes {
		a.changes = append(a.changes, terminal.Change{X: ch.X, Y: ch.Y, Cell: ToTerminal(ch.Cell)})
	}
	if err := a.term.WriteCells(a.changes); err != nil {
		return fmt.Errorf("write cells: %w", err)
	}
	return nil
}

// Sync clears the physical screen ahead of the full redraw that follows a resize
func (a *ANSI) Sync() error {
	a.term.Sync()
	return nil
}

// ToTerminal drops alpha; colors are already composited over an opaque backdrop
func ToTerminal(c render.Cell) terminal.Cell {
	r := c.Rune
	if r == 0 {
		r = ' '
	}
	return terminal.Cell{Rune: r, Fg: c.Fg.RGB(), Bg: c.Bg.RGB(), Attrs: c.Attrs}
}
