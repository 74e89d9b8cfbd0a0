package render

import "math"

// Filter grades a composited buffer before it is diffed.
// Filters must be deterministic so static scenes keep producing empty diffs
type Filter interface {
	Apply(buf *Buffer)
}

// GammaFilter remaps every channel through a precomputed curve
type GammaFilter struct {
	lut [256]uint8
}

// NewGammaFilter builds out = 255 * (in/255)^(1/gamma); gamma <= 0 is identity
func NewGammaFilter(gamma float64) *GammaFilter {
	f := &GammaFilter{}
	for i := range f.lut {
		if gamma <= 0 {
			f.lut[i] = uint8(i)
			continue
		}
		f.lut[i] = round(255.0 * math.Pow(float64(i)/255.0, 1.0/gamma))
	}
	return f
}

func (f *GammaFilter) Apply(buf *Buffer) {
	cells := buf.Cells()
	for i := range cells {
		cells[i].Fg = f.remap(cells[i].Fg)
		cells[i].Bg = f.remap(cells[i].Bg)
	}
}

func (f *GammaFilter) remap(c Color) Color {
	return Color{f.lut[c.R], f.lut[c.G], f.lut[c.B], c.A}
}

// VignetteFilter darkens toward the edges by layering black with growing alpha
type VignetteFilter struct {
	Strength float64 // max alpha at the corners, [0,1]
	Start    float64 // normalized radius where darkening begins, [0,1)

	// cached per-cell alpha, rebuilt on size change
	cols, rows int
	alpha      []uint8
}

func (f *VignetteFilter) Apply(buf *Buffer) {
	cols, rows := buf.Size()
	if cols != f.cols || rows != f.rows || f.alpha == nil {
		f.rebuild(cols, rows)
	}

	cells := buf.Cells()
	for i := range cells {
		a := f.alpha[i]
		if a == 0 {
			continue
		}
		shade := Color{0, 0, 0, a}
		cells[i].Fg = Over(cells[i].Fg, shade)
		cells[i].Bg = Over(cells[i].Bg, shade)
	}
}

func (f *VignetteFilter) rebuild(cols, rows int) {
	f.cols, f.rows = cols, rows
	f.alpha = make([]uint8, cols*rows)
	if cols == 0 || rows == 0 {
		return
	}

	cx, cy := float64(cols-1)/2, float64(rows-1)/2
	span := 1 - clamp01(f.Start)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			dx, dy := 0.0, 0.0
			if cx > 0 {
				dx = (float64(x) - cx) / cx
			}
			if cy > 0 {
				dy = (float64(y) - cy) / cy
			}
			d := math.Sqrt(dx*dx+dy*dy) / math.Sqrt2
			t := 0.0
			if span > 0 {
				t = clamp01((d - f.Start) / span)
			}
			// smoothstep
			t = t * t * (3 - 2*t)
			f.alpha[y*cols+x] = unit(t * clamp01(f.Strength))
		}
	}
}

// TintFilter layers a translucent color over every fg and bg
type TintFilter struct {
	Color Color
}

func (f TintFilter) Apply(buf *Buffer) {
	if f.Color.A == 0 {
		return
	}
	cells := buf.Cells()
	for i := range cells {
		cells[i].Fg = Over(cells[i].Fg, f.Color)
		cells[i].Bg = Over(cells[i].Bg, f.Color)
	}
}

// DimFilter scales every color by Factor
type DimFilter struct {
	Factor float64
}

func (f DimFilter) Apply(buf *Buffer) {
	if f.Factor == 1 {
		return
	}
	cells := buf.Cells()
	for i := range cells {
		cells[i].Fg = Scale(cells[i].Fg, f.Factor)
		cells[i].Bg = Scale(cells[i].Bg, f.Factor)
	}
}
