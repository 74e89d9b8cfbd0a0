package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSL is an editing representation; H in [0,360), S and L in [0,1]
// Alpha rides along unchanged
type HSL struct {
	H, S, L float64
	A       uint8
}

// ToHSL converts through go-colorful, normalizing hue
func ToHSL(c Color) HSL {
	h, s, l := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hsl()
	return HSL{H: normalizeHue(h), S: clamp01(s), L: clamp01(l), A: c.A}
}

// ToColor converts back, clamping out-of-gamut results
func (h HSL) ToColor() Color {
	r, g, b := colorful.Hsl(normalizeHue(h.H), clamp01(h.S), clamp01(h.L)).Clamped().RGB255()
	return Color{r, g, b, h.A}
}

// Darken reduces lightness by pct of its current value
func Darken(c Color, pct float64) Color {
	h := ToHSL(c)
	h.L *= 1 - clamp01(pct)
	return h.ToColor()
}

// Lighten moves lightness toward white by pct of the remaining headroom
func Lighten(c Color, pct float64) Color {
	h := ToHSL(c)
	h.L += (1 - h.L) * clamp01(pct)
	return h.ToColor()
}

// ShiftHue rotates hue by deg degrees
func ShiftHue(c Color, deg float64) Color {
	h := ToHSL(c)
	h.H += deg
	return h.ToColor()
}

// Saturate scales saturation by (1+pct); negative pct desaturates
func Saturate(c Color, pct float64) Color {
	h := ToHSL(c)
	h.S *= 1 + pct
	return h.ToColor()
}

func normalizeHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
