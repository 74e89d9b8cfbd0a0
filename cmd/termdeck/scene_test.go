package main

import (
	"testing"
	"time"

	"github.com/lixenwraith/termdeck/render"
)

func TestFeltColorDeterministic(t *testing.T) {
	for _, sec := range []float64{0, 0.5, 12.25} {
		if a, b := feltColor(7, 3, sec), feltColor(7, 3, sec); a != b {
			t.Errorf("At %.2fs: expected identical colors, got %v and %v", sec, a, b)
		}
	}
}

func TestFeltAnimates(t *testing.T) {
	const cols, rows = 40, 12

	changed := 0
	for y := range rows {
		for x := range cols {
			c0, c1 := feltColor(x, y, 0), feltColor(x, y, 0.75)
			if c0 != c1 {
				changed++
			}
			if c1.A != 255 {
				t.Fatalf("Expected opaque felt at (%d,%d), got %v", x, y, c1)
			}
			if c1.G <= c1.R || c1.G <= c1.B {
				t.Fatalf("Expected green felt at (%d,%d), got %v", x, y, c1)
			}
		}
	}
	if changed == 0 {
		t.Error("Expected felt to change over scene time")
	}
}

func TestFeltFreezesWhenSceneTimeStops(t *testing.T) {
	tb := newTable(nil)
	tb.update(300 * time.Millisecond)

	draw := func() []render.DrawCall {
		q := render.NewDrawQueue(64)
		tb.drawFelt(q, 6, 2)
		return append([]render.DrawCall(nil), q.Calls()...)
	}

	first := draw()
	tb.update(0)
	second := draw()
	if len(first) != 12 {
		t.Fatalf("Expected one call per cell, got %d", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Call %d: expected %+v, got %+v", i, first[i], second[i])
		}
	}

	tb.update(time.Second)
	moved := draw()
	same := true
	for i := range first {
		if first[i] != moved[i] {
			same = false
		}
	}
	if same {
		t.Error("Expected felt to move after scene time advances")
	}
}
