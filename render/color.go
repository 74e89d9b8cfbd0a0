package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lixenwraith/termdeck/terminal"
)

// RGB is the sink-side opaque color, alpha is resolved before it reaches the terminal
type RGB = terminal.RGB

// Color is a straight (non-premultiplied) RGBA value; A=255 is opaque
type Color struct {
	R, G, B, A uint8
}

// Common colors
var (
	Transparent = Color{}
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
)

// Opaque builds a fully opaque color
func Opaque(r, g, b uint8) Color {
	return Color{r, g, b, 255}
}

// FromBytes clamps each channel to [0,255]
func FromBytes(r, g, b, a int) Color {
	return Color{clampInt(r), clampInt(g), clampInt(b), clampInt(a)}
}

// FromFloat takes channels in [0,1], clamped and rounded to bytes
func FromFloat(r, g, b, a float64) Color {
	return Color{unit(r), unit(g), unit(b), unit(a)}
}

// FromRGB lifts an opaque sink color
func FromRGB(c RGB) Color {
	return Color{c.R, c.G, c.B, 255}
}

// RGB drops alpha at the sink boundary
func (c Color) RGB() RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}

// Alpha returns alpha in [0,1]
func (c Color) Alpha() float64 {
	return float64(c.A) / 255.0
}

// Floats returns all channels in [0,1]
func (c Color) Floats() (r, g, b, a float64) {
	return float64(c.R) / 255.0, float64(c.G) / 255.0, float64(c.B) / 255.0, float64(c.A) / 255.0
}

// WithAlpha replaces alpha with a [0,1] value
func (c Color) WithAlpha(a float64) Color {
	c.A = unit(a)
	return c
}

func (c Color) IsOpaque() bool { return c.A == 255 }
func (c Color) IsTransparent() bool { return c.A == 0 }

// Pack encodes as 0xRRGGBBAA
func (c Color) Pack() uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

// Unpack decodes 0xRRGGBBAA
func Unpack(v uint32) Color {
	return Color{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}
}

// String formats as #rrggbbaa
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseHex accepts #rgb, #rrggbb and #rrggbbaa, with or without the leading '#'
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]}) + "ff"
	case 6:
		h += "ff"
	case 8:
	default:
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Unpack(uint32(v)), nil
}

// round converts a [0,255] float to a byte, half-up
func round(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 || math.IsNaN(v) {
		return 0
	}
	return uint8(v + 0.5)
}

func unit(v float64) uint8 {
	return round(v * 255.0)
}

func clampInt(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
