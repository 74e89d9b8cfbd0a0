package render

import (
	"math/rand"
	"testing"
)

func TestDiffIdentical(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a := NewBuffer(17, 9)
	for i := range a.Cells() {
		a.Cells()[i] = randomCell(rng)
	}
	b := NewBuffer(17, 9)
	b.CopyFrom(a)

	if got := Diff(a, b, nil); len(got) != 0 {
		t.Errorf("Expected empty diff, got %d changes", len(got))
	}
}

func TestDiffCompleteness(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	prev := NewBuffer(23, 11)
	cur := NewBuffer(23, 11)

	changed := make(map[int]bool)
	for n := 0; n < 60; n++ {
		i := rng.Intn(len(cur.Cells()))
		c := randomCell(rng)
		cur.Cells()[i] = c
		changed[i] = c != prev.Cells()[i]
	}

	out := make([]CellChange, 0, 4)
	out = Diff(cur, prev, out)

	seen := make(map[int]bool)
	lastIdx := -1
	for _, ch := range out {
		idx := cur.Index(ch.X, ch.Y)
		if seen[idx] {
			t.Fatalf("Cell (%d,%d) reported twice", ch.X, ch.Y)
		}
		seen[idx] = true
		if idx <= lastIdx {
			t.Fatalf("Expected row-major order, got %d after %d", idx, lastIdx)
		}
		lastIdx = idx
		if ch.Cell != cur.Cells()[idx] {
			t.Errorf("Expected current cell value at (%d,%d)", ch.X, ch.Y)
		}
	}

	for i := range cur.Cells() {
		differs := cur.Cells()[i] != prev.Cells()[i]
		if differs != seen[i] {
			t.Errorf("Cell %d: differs=%v reported=%v", i, differs, seen[i])
		}
	}
}

func TestDiffReusesSlice(t *testing.T) {
	cur, prev := NewBuffer(4, 4), NewBuffer(4, 4)
	cur.Set(1, 1, Cell{Rune: 'q', Fg: White, Bg: Black})

	out := make([]CellChange, 5, 32)
	out = Diff(cur, prev, out)
	if len(out) != 1 || cap(out) != 32 {
		t.Errorf("Expected 1 change in the reused slice, got len=%d cap=%d", len(out), cap(out))
	}
	if out[0].X != 1 || out[0].Y != 1 {
		t.Errorf("Expected change at (1,1), got (%d,%d)", out[0].X, out[0].Y)
	}
}

func TestDiffSizeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic on size mismatch")
		}
	}()
	Diff(NewBuffer(3, 3), NewBuffer(3, 4), nil)
}

func TestStats(t *testing.T) {
	changes := []CellChange{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 5, Y: 0},
		{X: 6, Y: 2},
		{X: 0, Y: 3}, {X: 1, Y: 3},
	}
	got := Stats(changes)
	want := DiffStats{Cells: 6, Runs: 4, Rows: 3}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}
