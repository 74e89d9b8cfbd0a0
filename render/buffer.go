package render

import "fmt"

// Buffer is a row-major grid of cells; len(cells) == cols*rows always
type Buffer struct {
	cells []Cell
	cols  int
	rows  int
}

// NewBuffer creates a buffer filled with DefaultCell
func NewBuffer(cols, rows int) *Buffer {
	cols, rows = max(cols, 0), max(rows, 0)
	b := &Buffer{
		cells: make([]Cell, cols*rows),
		cols:  cols,
		rows:  rows,
	}
	b.Clear()
	return b
}

func (b *Buffer) Cols() int { return b.cols }
func (b *Buffer) Rows() int { return b.rows }

// Size returns (cols, rows)
func (b *Buffer) Size() (int, int) { return b.cols, b.rows }

// Cells exposes the backing slice for sequential scans
func (b *Buffer) Cells() []Cell { return b.cells }

// Index returns the row-major offset of (x, y); the caller checks bounds
func (b *Buffer) Index(x, y int) int { return y*b.cols + x }

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.cols && y >= 0 && y < b.rows
}

// At returns the cell at (x, y), or DefaultCell when out of bounds
func (b *Buffer) At(x, y int) Cell {
	if !b.inBounds(x, y) {
		return DefaultCell
	}
	return b.cells[y*b.cols+x]
}

// Set stores a cell, returns false when clipped
func (b *Buffer) Set(x, y int, c Cell) bool {
	if !b.inBounds(x, y) {
		return false
	}
	b.cells[y*b.cols+x] = c
	return true
}

// Clear resets every cell to DefaultCell
func (b *Buffer) Clear() {
	b.Fill(DefaultCell)
}

// Fill sets every cell to c using exponential copy
func (b *Buffer) Fill(c Cell) {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = c
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// Resize changes dimensions and resets content, reallocating only when capacity is short
func (b *Buffer) Resize(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	size := cols * rows
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.cols = cols
	b.rows = rows
	b.Clear()
}

// CopyFrom overwrites b with src; sizes must match
func (b *Buffer) CopyFrom(src *Buffer) {
	b.mustMatch(src)
	copy(b.cells, src.cells)
}

func (b *Buffer) mustMatch(o *Buffer) {
	if b.cols != o.cols || b.rows != o.rows {
		panic(fmt.Sprintf("render: buffer size mismatch %dx%d vs %dx%d", b.cols, b.rows, o.cols, o.rows))
	}
}
