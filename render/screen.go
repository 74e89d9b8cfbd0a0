package render

// Screen holds the current and previous frames plus a reusable change list.
// The previous frame is overwritten by copy on Commit, never swapped.
//
// Current is the compositing backdrop and is never filtered. Grade copies it
// into a separate buffer for post-processing, and Diff/Commit then work on
// that copy, so filters apply once per frame instead of compounding
type Screen struct {
	current  *Buffer
	previous *Buffer
	changes  []CellChange
	full     bool

	graded *Buffer // filtered copy of current, allocated on first Grade
	base   *Buffer // unfiltered current as of the last graded Commit
	out    *Buffer // buffer Diff and Commit read this frame
	// baseValid is set when previous holds filtered cells and base holds
	// the matching unfiltered frame
	baseValid bool
}

// NewScreen starts with a pending full redraw
func NewScreen(cols, rows int) *Screen {
	return &Screen{
		current:  NewBuffer(cols, rows),
		previous: NewBuffer(cols, rows),
		changes:  make([]CellChange, 0, max(cols*rows/4, 16)),
		full:     true,
	}
}

func (s *Screen) output() *Buffer {
	if s.out == nil {
		return s.current
	}
	return s.out
}

func (s *Screen) Current() *Buffer  { return s.current }
func (s *Screen) Previous() *Buffer { return s.previous }

// Size returns (cols, rows)
func (s *Screen) Size() (int, int) { return s.current.Size() }

// Resize blanks both buffers at the new size; the next Diff emits every cell
func (s *Screen) Resize(cols, rows int) {
	s.current.Resize(cols, rows)
	s.previous.Resize(cols, rows)
	if s.graded != nil {
		s.graded.Resize(cols, rows)
		s.base.Resize(cols, rows)
	}
	s.out = nil
	s.baseValid = false
	s.full = true
}

// Grade copies current into the graded buffer and runs the filters over it.
// With no filters the frame is diffed straight from current
func (s *Screen) Grade(filters ...Filter) {
	if len(filters) == 0 {
		s.out = nil
		return
	}
	if s.graded == nil {
		cols, rows := s.current.Size()
		s.graded = NewBuffer(cols, rows)
		s.base = NewBuffer(cols, rows)
	}
	s.graded.CopyFrom(s.current)
	for _, f := range filters {
		f.Apply(s.graded)
	}
	s.out = s.graded
}

// Output returns the buffer the next Diff reads: the graded copy after Grade,
// otherwise current
func (s *Screen) Output() *Buffer { return s.output() }

// Invalidate forces the next Diff to emit every cell
func (s *Screen) Invalidate() { s.full = true }

// NeedsFullRedraw reports whether the next Diff is forced
func (s *Screen) NeedsFullRedraw() bool { return s.full }

// Clear resets the current buffer to DefaultCell
func (s *Screen) Clear() { s.current.Clear() }

// ClearTo fills the current buffer with spaces on an opaque bg
func (s *Screen) ClearTo(bg Color) {
	bg.A = 255
	s.current.Fill(Cell{Rune: ' ', Fg: DefaultFg, Bg: bg})
}

// Diff returns the changes since the last commit; the slice is reused next frame
func (s *Screen) Diff() []CellChange {
	if s.full {
		s.changes = DiffAll(s.output(), s.changes)
	} else {
		s.changes = Diff(s.output(), s.previous, s.changes)
	}
	return s.changes
}

// Commit copies the frame output into previous and clears the forced redraw
func (s *Screen) Commit() {
	out := s.output()
	s.previous.CopyFrom(out)
	s.baseValid = out == s.graded
	if s.baseValid {
		s.base.CopyFrom(s.current)
	}
	s.out = nil
	s.full = false
}

// Rollback discards an uncommitted frame: current returns to the last
// committed composite and the next Diff is forced full
func (s *Screen) Rollback() {
	if s.baseValid {
		s.current.CopyFrom(s.base)
	} else {
		s.current.CopyFrom(s.previous)
	}
	s.out = nil
	s.full = true
}
