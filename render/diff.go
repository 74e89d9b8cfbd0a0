package render

// CellChange is one changed cell, emitted in row-major order
type CellChange struct {
	X, Y int
	Cell Cell
}

// Diff appends every cell where cur differs from prev to out[:0] and returns it.
// Dimensions must match
func Diff(cur, prev *Buffer, out []CellChange) []CellChange {
	cur.mustMatch(prev)
	out = out[:0]

	cols := cur.cols
	a, b := cur.cells, prev.cells
	for i := range a {
		if a[i] != b[i] {
			out = append(out, CellChange{X: i % cols, Y: i / cols, Cell: a[i]})
		}
	}
	return out
}

// DiffAll emits every cell of cur, for forced redraws
func DiffAll(cur *Buffer, out []CellChange) []CellChange {
	out = out[:0]
	cols := cur.cols
	for i, c := range cur.cells {
		out = append(out, CellChange{X: i % cols, Y: i / cols, Cell: c})
	}
	return out
}

// DiffStats summarizes a change list
type DiffStats struct {
	Cells int // changed cells
	Runs  int // horizontally contiguous spans
	Rows  int // distinct rows touched
}

// Stats assumes row-major order, which Diff and DiffAll guarantee
func Stats(changes []CellChange) DiffStats {
	s := DiffStats{Cells: len(changes)}
	lastX, lastY := -2, -1
	for _, ch := range changes {
		if ch.Y != lastY {
			s.Rows++
			s.Runs++
		} else if ch.X != lastX+1 {
			s.Runs++
		}
		lastX, lastY = ch.X, ch.Y
	}
	return s
}
