package render

// Compositor folds draw calls into a buffer, one cell at a time
type Compositor struct {
	mode BlendMode
}

// NewCompositor uses mode for every translucent layer
func NewCompositor(mode BlendMode) *Compositor {
	return &Compositor{mode: mode}
}

// Mode returns the active blend mode
func (c *Compositor) Mode() BlendMode { return c.mode }

// SetMode swaps the blend mode for subsequent calls
func (c *Compositor) SetMode(mode BlendMode) { c.mode = mode }

// CompositeAll applies calls in order
func (c *Compositor) CompositeAll(buf *Buffer, calls []DrawCall) {
	for i := range calls {
		c.Composite(buf, &calls[i])
	}
}

// Composite paints one draw call, clipping horizontally per character.
// Calls on an off-screen row or starting at or past the right edge are dropped
func (c *Compositor) Composite(buf *Buffer, call *DrawCall) {
	if call.Y < 0 || call.Y >= buf.rows || call.X >= buf.cols {
		return
	}

	x := call.X
	row := buf.cells[call.Y*buf.cols : (call.Y+1)*buf.cols]

	for _, r := range call.Text {
		if !occupiesCell(r) {
			continue
		}
		if x >= buf.cols {
			return
		}
		if x >= 0 {
			row[x] = ComposeCell(row[x], r, call.Fg, call.Bg, call.Attrs, c.mode)
		}
		x++
	}
}

// ComposeCell merges one incoming glyph onto old
func ComposeCell(old Cell, r rune, fg, bg Color, attrs Attr, mode BlendMode) Cell {
	incomingVisible := visible(r, fg)

	// An opaque invisible glyph covers the cell with blank background.
	// The rune is dropped so transparent ink never reaches a sink.
	if !incomingVisible && bg.A == 255 {
		return Cell{Rune: ' ', Fg: fg, Bg: bg}
	}

	out := old
	switch bg.A {
	case 0:
	case 255:
		out.Bg = bg
	default:
		out.Bg = Mix(mode, old.Bg, bg)
	}

	switch {
	case !incomingVisible:
		// Ink under a translucent overlay takes the overlay's tint
		if bg.A != 0 {
			out.Fg = Mix(mode, old.Fg, bg)
		}
	case fg.A == 255:
		out.Rune = r
		out.Fg = fg
		out.Attrs = attrs
	default:
		backdrop := old.Bg
		if old.Visible() {
			backdrop = old.Fg
		}
		out.Rune = r
		out.Fg = Mix(mode, backdrop, fg)
		out.Attrs = attrs
	}

	return out
}
