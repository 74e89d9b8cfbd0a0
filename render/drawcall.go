package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DrawCall is one positioned, styled run of text. The origin may lie off-screen
type DrawCall struct {
	X, Y  int
	Text  string
	Fg    Color
	Bg    Color
	Attrs Attr
}

// Text builds a draw call
func Text(x, y int, s string, fg, bg Color, attrs Attr) DrawCall {
	return DrawCall{X: x, Y: y, Text: s, Fg: fg, Bg: bg, Attrs: attrs}
}

// Width is the number of cells the text occupies; zero-width runes take none
func (d DrawCall) Width() int {
	n := 0
	for _, r := range d.Text {
		if occupiesCell(r) {
			n++
		}
	}
	return n
}

// occupiesCell excludes combining marks and other zero-width runes
func occupiesCell(r rune) bool {
	return runewidth.RuneWidth(r) != 0
}

// Truncate cuts s to at most w cells, appending tail when it cuts
func Truncate(s string, w int, tail string) string {
	return runewidth.Truncate(s, w, tail)
}

// DrawQueue collects a frame's draw calls in submission order; later calls layer on top
type DrawQueue struct {
	calls []DrawCall
}

// NewDrawQueue preallocates room for capacity calls
func NewDrawQueue(capacity int) *DrawQueue {
	return &DrawQueue{calls: make([]DrawCall, 0, capacity)}
}

func (q *DrawQueue) Push(calls ...DrawCall) {
	q.calls = append(q.calls, calls...)
}

// Text appends a text run
func (q *DrawQueue) Text(x, y int, s string, fg, bg Color, attrs Attr) {
	q.calls = append(q.calls, Text(x, y, s, fg, bg, attrs))
}

// FillRect appends one space-filled call per row; translucent bg tints what is under it
func (q *DrawQueue) FillRect(x, y, w, h int, bg Color) {
	if w <= 0 || h <= 0 {
		return
	}
	row := strings.Repeat(" ", w)
	for dy := 0; dy < h; dy++ {
		q.calls = append(q.calls, DrawCall{X: x, Y: y + dy, Text: row, Fg: Transparent, Bg: bg})
	}
}

// Background fills the whole screen; bg is forced opaque so it is a clean slate
func (q *DrawQueue) Background(cols, rows int, bg Color) {
	bg.A = 255
	q.FillRect(0, 0, cols, rows, bg)
}

func (q *DrawQueue) Len() int { return len(q.calls) }

// Calls exposes the queued calls; the slice is reused after Reset
func (q *DrawQueue) Calls() []DrawCall { return q.calls }

// Reset empties the queue, keeping capacity
func (q *DrawQueue) Reset() {
	clear(q.calls)
	q.calls = q.calls[:0]
}
