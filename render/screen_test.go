package render

import "testing"

func TestScreenResizeFullRedraw(t *testing.T) {
	s := NewScreen(20, 10)
	c := NewCompositor(BlendSourceOver)

	frame := func() []CellChange {
		q := NewDrawQueue(4)
		cols, rows := s.Size()
		q.Background(cols, rows, Felt)
		q.Text(2, 2, "SPIN", Gold, Transparent, AttrBold)
		c.CompositeAll(s.Current(), q.Calls())
		changes := s.Diff()
		s.Commit()
		return changes
	}

	if got := len(frame()); got != 20*10 {
		t.Errorf("First frame: expected %d changes, got %d", 20*10, got)
	}
	if got := len(frame()); got != 0 {
		t.Errorf("Static frame: expected 0 changes, got %d", got)
	}

	s.Resize(30, 15)
	changes := frame()
	if len(changes) != 30*15 {
		t.Errorf("After resize: expected %d changes, got %d", 30*15, len(changes))
	}

	seen := make(map[[2]int]bool)
	for _, ch := range changes {
		seen[[2]int{ch.X, ch.Y}] = true
	}
	if len(seen) != 30*15 {
		t.Errorf("Expected every cell once, got %d distinct", len(seen))
	}

	cc, cr := s.Current().Size()
	pc, pr := s.Previous().Size()
	if cc != 30 || cr != 15 || pc != 30 || pr != 15 {
		t.Errorf("Expected both buffers 30x15, got %dx%d and %dx%d", cc, cr, pc, pr)
	}

	if got := len(frame()); got != 0 {
		t.Errorf("Static frame after resize: expected 0 changes, got %d", got)
	}
}

func TestScreenInvalidate(t *testing.T) {
	s := NewScreen(5, 2)
	s.Diff()
	s.Commit()
	if s.NeedsFullRedraw() {
		t.Fatal("Expected forced redraw cleared by Commit")
	}

	s.Invalidate()
	if got := len(s.Diff()); got != 10 {
		t.Errorf("Expected 10 changes after Invalidate, got %d", got)
	}
}

func TestScreenClearIsExplicit(t *testing.T) {
	s := NewScreen(3, 1)
	s.Current().Set(0, 0, Cell{Rune: 'x', Fg: White, Bg: Black})
	s.Commit()

	// Without a clear the previous frame's content carries over
	if got := s.Current().At(0, 0).Rune; got != 'x' {
		t.Errorf("Expected carried-over 'x', got %q", got)
	}

	s.ClearTo(Color{1, 2, 3, 0})
	got := s.Current().At(0, 0)
	if got.Rune != ' ' || got.Bg != Opaque(1, 2, 3) {
		t.Errorf("Expected opaque clear, got %+v", got)
	}
}

func TestBufferCopyFromMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic")
		}
	}()
	NewBuffer(2, 2).CopyFrom(NewBuffer(2, 3))
}

func TestBufferResizeReusesCapacity(t *testing.T) {
	b := NewBuffer(10, 10)
	b.Set(3, 3, Cell{Rune: 'r'})
	b.Resize(5, 5)
	if cap(b.Cells()) != 100 || len(b.Cells()) != 25 {
		t.Errorf("Expected len 25 cap 100, got len %d cap %d", len(b.Cells()), cap(b.Cells()))
	}
	for i, c := range b.Cells() {
		if c != DefaultCell {
			t.Fatalf("Expected default cell at %d, got %+v", i, c)
		}
	}
	if b.Set(5, 0, DefaultCell) {
		t.Error("Expected Set past the edge to clip")
	}
}

func TestScreenGradeLeavesCurrent(t *testing.T) {
	s := NewScreen(2, 1)
	gray := Opaque(128, 128, 128)
	s.Current().Fill(Cell{Rune: 'g', Fg: gray, Bg: gray})
	half := DimFilter{Factor: 0.5}

	for i := range 3 {
		s.Grade(half)
		changes := s.Diff()
		if i == 0 && len(changes) != 2 {
			t.Fatalf("First frame: expected 2 changes, got %d", len(changes))
		}
		if i > 0 && len(changes) != 0 {
			t.Errorf("Frame %d: expected no changes, got %d", i, len(changes))
		}
		s.Commit()
	}

	if got := s.Current().At(0, 0).Fg; got != gray {
		t.Errorf("Expected unfiltered current %v, got %v", gray, got)
	}
	if got, want := s.Previous().At(0, 0).Fg, Scale(gray, 0.5); got != want {
		t.Errorf("Expected graded previous %v, got %v", want, got)
	}
	if s.Output() != s.Current() {
		t.Error("Expected output to reset to current after commit")
	}
}

func TestScreenRollback(t *testing.T) {
	tests := []struct {
		name    string
		filters []Filter
	}{
		{"plain", nil},
		{"graded", []Filter{DimFilter{Factor: 0.5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(1, 1)
			committed := Cell{Rune: 'A', Fg: White, Bg: Black}
			s.Current().Set(0, 0, committed)
			s.Grade(tt.filters...)
			s.Diff()
			s.Commit()

			s.Current().Set(0, 0, Cell{Rune: 'B', Fg: White, Bg: Black})
			s.Grade(tt.filters...)
			s.Diff()
			s.Rollback()

			if got := s.Current().At(0, 0); got != committed {
				t.Errorf("Expected %+v after rollback, got %+v", committed, got)
			}
			if !s.NeedsFullRedraw() {
				t.Error("Expected forced redraw after rollback")
			}
		})
	}
}
