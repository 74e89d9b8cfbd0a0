package terminal

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteChangesTrueColor(t *testing.T) {
	var out bytes.Buffer
	o := newOutputBuffer(&out, ColorModeTrueColor)
	o.resize(10, 5)

	err := o.writeChanges([]Change{
		{X: 2, Y: 1, Cell: Cell{Rune: 'A', Fg: RGB{255, 0, 0}, Bg: RGB{0, 0, 255}}},
		{X: 3, Y: 1, Cell: Cell{Rune: 'B', Fg: RGB{255, 0, 0}, Bg: RGB{0, 0, 255}}},
	})
	if err != nil {
		t.Fatalf("writeChanges: %v", err)
	}

	want := "\x1b[2;3H" + "\x1b[0;38;2;255;0;0;48;2;0;0;255m" + "AB" + "\x1b[0m"
	if got := out.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestWriteChangesCursorForward(t *testing.T) {
	var out bytes.Buffer
	o := newOutputBuffer(&out, ColorModeTrueColor)
	o.resize(20, 2)

	cell := Cell{Rune: 'x', Fg: RGB{1, 2, 3}}
	if err := o.writeChanges([]Change{{X: 0, Y: 0, Cell: cell}, {X: 5, Y: 0, Cell: cell}}); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out.String(), "\x1b[4C") {
		t.Errorf("Expected forward move of 4, got %q", out.String())
	}
}

func TestWriteChangesWideRuneRepositions(t *testing.T) {
	var out bytes.Buffer
	o := newOutputBuffer(&out, ColorModeTrueColor)
	o.resize(10, 2)

	cell := Cell{Fg: RGB{1, 2, 3}}
	wide, narrow := cell, cell
	wide.Rune = '中'
	narrow.Rune = 'a'
	if err := o.writeChanges([]Change{{X: 0, Y: 0, Cell: wide}, {X: 1, Y: 0, Cell: narrow}}); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	want := "中\x1b[1;2Ha"
	if !strings.Contains(got, want) {
		t.Errorf("Expected absolute move after wide rune %q, got %q", want, got)
	}
}

func TestWriteChangesClipsOutOfBounds(t *testing.T) {
	var out bytes.Buffer
	o := newOutputBuffer(&out, ColorModeTrueColor)
	o.resize(4, 4)

	err := o.writeChanges([]Change{
		{X: -1, Y: 0, Cell: Cell{Rune: 'a'}},
		{X: 4, Y: 0, Cell: Cell{Rune: 'b'}},
		{X: 0, Y: 4, Cell: Cell{Rune: 'c'}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "\x1b[0m" {
		t.Errorf("Expected only SGR reset, got %q", got)
	}
}

func TestWriteChangesAttrsAnd256(t *testing.T) {
	var out bytes.Buffer
	o := newOutputBuffer(&out, ColorMode256)
	o.resize(4, 1)

	err := o.writeChanges([]Change{
		{X: 0, Y: 0, Cell: Cell{Rune: 'z', Fg: RGB{255, 255, 255}, Bg: RGB{0, 0, 0}, Attrs: AttrBold | AttrUnderline}},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := "\x1b[1;1H\x1b[0;1;4;38;5;231;48;5;16mz\x1b[0m"
	if got := out.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestWriteChangesNulRuneIsSpace(t *testing.T) {
	var out bytes.Buffer
	o := newOutputBuffer(&out, ColorModeTrueColor)
	o.resize(1, 1)

	if err := o.writeChanges([]Change{{X: 0, Y: 0}}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "m \x1b[0m") {
		t.Errorf("Expected a space for the zero rune, got %q", out.String())
	}
}

func TestWriteInt(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{-5, "0"},
		{0, "0"},
		{7, "7"},
		{42, "42"},
		{255, "255"},
		{1000, "1000"},
		{123456, "123456"},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		o := newOutputBuffer(&out, ColorModeTrueColor)
		writeInt(o.writer, tt.n)
		o.writer.Flush()
		if out.String() != tt.want {
			t.Errorf("writeInt(%d): expected %q, got %q", tt.n, tt.want, out.String())
		}
	}
}
