package terminal

import (
	"bufio"
	"io"

	"github.com/mattn/go-runewidth"
)

// outputBuffer serializes sparse cell changes into ANSI sequences
// The caller owns diffing; this layer only tracks cursor and SGR state
type outputBuffer struct {
	width     int
	height    int
	colorMode ColorMode
	writer    *bufio.Writer

	cursorX     int
	cursorY     int
	cursorValid bool

	// Style state for coalescing
	lastFg    RGB
	lastBg    RGB
	lastAttr  Attr
	lastValid bool
}

// newOutputBuffer creates a new output buffer
func newOutputBuffer(w io.Writer, colorMode ColorMode) *outputBuffer {
	return &outputBuffer{
		writer:    bufio.NewWriterSize(w, 131072), // 128KB buffer
		colorMode: colorMode,
	}
}

// resize updates the clip bounds and forgets positional state
func (o *outputBuffer) resize(width, height int) {
	o.width = width
	o.height = height
	o.lastValid = false
	o.cursorValid = false
}

// writeChanges emits changes in order, moving the cursor only when a change
// is not adjacent to the previous one
func (o *outputBuffer) writeChanges(changes []Change) error {
	if len(changes) == 0 {
		return nil
	}

	w := o.writer

	for i := range changes {
		ch := &changes[i]
		if ch.X < 0 || ch.Y < 0 || ch.X >= o.width || ch.Y >= o.height {
			continue
		}

		if !o.cursorValid || ch.X != o.cursorX || ch.Y != o.cursorY {
			// Forward motion on the same row is non-destructive and shorter
			if o.cursorValid && ch.Y == o.cursorY && ch.X > o.cursorX {
				writeCursorForward(w, ch.X-o.cursorX)
			} else {
				writeCursorPos(w, ch.X, ch.Y)
			}
			o.cursorX = ch.X
			o.cursorY = ch.Y
			o.cursorValid = true
		}

		o.writeStyleCoalesced(w, ch.Cell.Fg, ch.Cell.Bg, ch.Cell.Attrs)

		r := ch.Cell.Rune
		if r == 0 {
			r = ' '
		}
		if r < 0x80 {
			w.WriteByte(byte(r))
		} else {
			w.WriteRune(r)
		}
		o.cursorX++

		// Auto-wrap is off, the cursor sticks at the right edge.
		// A wide glyph moves the real cursor two columns, so stop tracking
		if o.cursorX >= o.width || (r >= 0x80 && runewidth.RuneWidth(r) > 1) {
			o.cursorValid = false
		}
	}

	w.Write(csiSGR0)
	o.lastValid = false

	return w.Flush()
}

// writeStyleCoalesced emits a single combined SGR sequence when style changes
func (o *outputBuffer) writeStyleCoalesced(w *bufio.Writer, fg, bg RGB, attr Attr) {
	fgChanged := !o.lastValid || fg != o.lastFg
	bgChanged := !o.lastValid || bg != o.lastBg
	styleAttr := attr & AttrStyle
	attrChanged := !o.lastValid || styleAttr != o.lastAttr&AttrStyle

	if !fgChanged && !bgChanged && !attrChanged {
		return
	}

	if attrChanged {
		// Attribute removal requires a reset, so colors are re-emitted too
		w.Write(csi)
		w.WriteByte('0')
		writeAttrParams(w, styleAttr)
		o.writeFgInline(w, fg)
		o.writeBgInline(w, bg)
		w.WriteByte('m')
	} else if fgChanged && bgChanged {
		w.Write(csi)
		w.WriteByte('0')
		writeAttrParams(w, styleAttr)
		o.writeFgInline(w, fg)
		o.writeBgInline(w, bg)
		w.WriteByte('m')
	} else if fgChanged {
		o.writeFgFull(w, fg)
	} else {
		o.writeBgFull(w, bg)
	}

	o.lastFg = fg
	o.lastBg = bg
	o.lastAttr = attr
	o.lastValid = true
}

// writeFgInline writes fg color parameters (no CSI prefix, no 'm' suffix)
func (o *outputBuffer) writeFgInline(w *bufio.Writer, fg RGB) {
	w.WriteByte(';')
	if o.colorMode == ColorModeTrueColor {
		w.WriteString("38;2;")
		writeRGBParams(w, fg)
		return
	}
	w.WriteString("38;5;")
	writeInt(w, int(RGBTo256(fg)))
}

// writeBgInline writes bg color parameters (no CSI prefix, no 'm' suffix)
func (o *outputBuffer) writeBgInline(w *bufio.Writer, bg RGB) {
	w.WriteByte(';')
	if o.colorMode == ColorModeTrueColor {
		w.WriteString("48;2;")
		writeRGBParams(w, bg)
		return
	}
	w.WriteString("48;5;")
	writeInt(w, int(RGBTo256(bg)))
}

// writeFgFull writes complete fg color sequence
func (o *outputBuffer) writeFgFull(w *bufio.Writer, fg RGB) {
	if o.colorMode == ColorModeTrueColor {
		w.Write(csiFgRGB)
		writeRGBParams(w, fg)
	} else {
		w.Write(csiFg256)
		writeInt(w, int(RGBTo256(fg)))
	}
	w.WriteByte('m')
}

// writeBgFull writes complete bg color sequence
func (o *outputBuffer) writeBgFull(w *bufio.Writer, bg RGB) {
	if o.colorMode == ColorModeTrueColor {
		w.Write(csiBgRGB)
		writeRGBParams(w, bg)
	} else {
		w.Write(csiBg256)
		writeInt(w, int(RGBTo256(bg)))
	}
	w.WriteByte('m')
}

// clear writes a clear screen with specified background
func (o *outputBuffer) clear(bg RGB) {
	w := o.writer
	w.Write(csiSGR0)
	o.writeBgFull(w, bg)
	w.Write(csiClear)

	o.lastValid = false
	o.cursorValid = false
	w.Flush()
}
