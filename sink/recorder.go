package sink

import (
	"strings"

	"github.com/lixenwraith/termdeck/render"
)

// Recorder replays every change into an in-memory grid that grows to fit
type Recorder struct {
	cols, rows  int
	cells       []render.Cell
	frames      int
	lastChanges int
	total       int
	syncs       int
}

func NewRecorder(cols, rows int) *Recorder {
	r := &Recorder{}
	r.grow(cols, rows)
	return r
}

func (r *Recorder) Present(changes []render.CellChange) error {
	for _, ch := range changes {
		if ch.X < 0 || ch.Y < 0 {
			continue
		}
		if ch.X >= r.cols || ch.Y >= r.rows {
			r.grow(max(r.cols, ch.X+1), max(r.rows, ch.Y+1))
		}
		r.cells[ch.Y*r.cols+ch.X] = ch.Cell
	}
	r.frames++
	r.lastChanges = len(changes)
	r.total += len(changes)
	return nil
}

func (r *Recorder) Sync() error {
	r.syncs++
	return nil
}

// Resize blanks the grid to a new size
func (r *Recorder) Resize(cols, rows int) {
	r.cols, r.rows, r.cells = 0, 0, nil
	r.grow(cols, rows)
}

func (r *Recorder) grow(cols, rows int) {
	cells := make([]render.Cell, cols*rows)
	for i := range cells {
		cells[i] = render.DefaultCell
	}
	for y := 0; y < min(r.rows, rows); y++ {
		copy(cells[y*cols:y*cols+min(r.cols, cols)], r.cells[y*r.cols:])
	}
	r.cols, r.rows, r.cells = cols, rows, cells
}

// At returns the recorded cell, DefaultCell outside the grid
func (r *Recorder) At(x, y int) render.Cell {
	if x < 0 || y < 0 || x >= r.cols || y >= r.rows {
		return render.DefaultCell
	}
	return r.cells[y*r.cols+x]
}

// Line returns row y as text, with zero runes shown as spaces
func (r *Recorder) Line(y int) string {
	if y < 0 || y >= r.rows {
		return ""
	}
	var sb strings.Builder
	for _, c := range r.cells[y*r.cols : (y+1)*r.cols] {
		if c.Rune == 0 {
			sb.WriteByte(' ')
		} else {
			sb.WriteRune(c.Rune)
		}
	}
	return sb.String()
}

func (r *Recorder) Size() (int, int) { return r.cols, r.rows }

// Frames counts Present calls
func (r *Recorder) Frames() int { return r.frames }

// LastChanges is the change count of the most recent Present
func (r *Recorder) LastChanges() int { return r.lastChanges }

// TotalChanges sums every Present
func (r *Recorder) TotalChanges() int { return r.total }

func (r *Recorder) Syncs() int { return r.syncs }
