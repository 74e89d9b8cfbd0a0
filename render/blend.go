package render

import (
	"fmt"
	"math"
	"strings"
)

// BlendMode selects the channel operator used when a translucent layer lands
// on a cell. The set is closed; unknown values behave as BlendSourceOver
type BlendMode uint8

const (
	BlendSourceOver BlendMode = iota
	BlendAdd
	BlendScreen
	BlendMultiply
	BlendMax
	BlendOverlay
	BlendSoftLight
)

var blendModeNames = [...]string{
	BlendSourceOver: "source-over",
	BlendAdd:        "add",
	BlendScreen:     "screen",
	BlendMultiply:   "multiply",
	BlendMax:        "max",
	BlendOverlay:    "overlay",
	BlendSoftLight:  "soft-light",
}

func (m BlendMode) String() string {
	if int(m) < len(blendModeNames) {
		return blendModeNames[m]
	}
	return fmt.Sprintf("BlendMode(%d)", m)
}

// ParseBlendMode resolves a config name
func ParseBlendMode(s string) (BlendMode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" || name == "alpha" {
		return BlendSourceOver, nil
	}
	for i, n := range blendModeNames {
		if n == name {
			return BlendMode(i), nil
		}
	}
	return BlendSourceOver, fmt.Errorf("unknown blend mode %q", s)
}

// Perez SoftLight lookup tables
var (
	softLightG  [256]float64
	softLightDF [256]float64
)

func init() {
	for i := 0; i < 256; i++ {
		df := float64(i) / 255.0
		softLightDF[i] = df
		if df <= 0.25 {
			softLightG[i] = ((16.0*df-12.0)*df + 4.0) * df
		} else {
			softLightG[i] = math.Sqrt(df)
		}
	}
}

// Over is the Porter-Duff source-over operator on straight alpha.
// Fully transparent results are defined as transparent black
func Over(bottom, top Color) Color {
	if top.A == 255 {
		return top
	}
	if top.A == 0 {
		return bottom
	}

	ta := float64(top.A) / 255.0
	ba := float64(bottom.A) / 255.0
	bw := ba * (1 - ta)
	outA := ta + bw
	if outA <= 0 {
		return Transparent
	}

	return Color{
		R: round((float64(top.R)*ta + float64(bottom.R)*bw) / outA),
		G: round((float64(top.G)*ta + float64(bottom.G)*bw) / outA),
		B: round((float64(top.B)*ta + float64(bottom.B)*bw) / outA),
		A: round(outA * 255.0),
	}
}

// Mix applies the mode's channel operator and composites the result over
// bottom with top's alpha, so alpha 0 always returns bottom unchanged
func Mix(mode BlendMode, bottom, top Color) Color {
	if top.A == 0 {
		return bottom
	}
	if mode == BlendSourceOver {
		return Over(bottom, top)
	}

	var op func(d, s uint8) uint8
	switch mode {
	case BlendAdd:
		op = addChannel
	case BlendScreen:
		op = screenChannel
	case BlendMultiply:
		op = multiplyChannel
	case BlendMax:
		op = maxChannel
	case BlendOverlay:
		op = overlayChannel
	case BlendSoftLight:
		op = softLightChannel
	default:
		return Over(bottom, top)
	}

	mixed := Color{
		R: op(bottom.R, top.R),
		G: op(bottom.G, top.G),
		B: op(bottom.B, top.B),
		A: top.A,
	}
	return Over(bottom, mixed)
}

// Lerp interpolates every channel including alpha; t is clamped to [0,1]
func Lerp(a, b Color, t float64) Color {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	l := func(x, y uint8) uint8 {
		return round(float64(x) + t*float64(int(y)-int(x)))
	}
	return Color{l(a.R, b.R), l(a.G, b.G), l(a.B, b.B), l(a.A, b.A)}
}

// Scale multiplies the color channels by factor, alpha is kept
func Scale(c Color, factor float64) Color {
	return Color{
		R: round(float64(c.R) * factor),
		G: round(float64(c.G) * factor),
		B: round(float64(c.B) * factor),
		A: c.A,
	}
}

// Grayscale uses Rec. 601 luma: (R*299 + G*587 + B*114) / 1000
func Grayscale(c Color) Color {
	gray := uint8((int(c.R)*299 + int(c.G)*587 + int(c.B)*114) / 1000)
	return Color{gray, gray, gray, c.A}
}

// fastDiv255 approximates x / 255: (x + (x >> 8) + 1) >> 8
func fastDiv255(x int) int {
	return (x + (x >> 8) + 1) >> 8
}

func addChannel(d, s uint8) uint8 {
	return clampInt(int(d) + int(s))
}

func maxChannel(d, s uint8) uint8 {
	return max(d, s)
}

func multiplyChannel(d, s uint8) uint8 {
	return uint8(fastDiv255(int(d) * int(s)))
}

// screenChannel: 1 - (1-d)*(1-s)
func screenChannel(d, s uint8) uint8 {
	return uint8(255 - fastDiv255((255-int(d))*(255-int(s))))
}

// overlayChannel multiplies below mid-gray and screens above, keyed on the destination
func overlayChannel(d, s uint8) uint8 {
	if d < 128 {
		return uint8(fastDiv255(2 * int(d) * int(s)))
	}
	return uint8(255 - fastDiv255(2*(255-int(d))*(255-int(s))))
}

func softLightChannel(d, s uint8) uint8 {
	df := softLightDF[d]
	sf := softLightDF[s]

	var result float64
	if sf < 0.5 {
		result = df - (1.0-2.0*sf)*df*(1.0-df)
	} else {
		result = df + (2.0*sf-1.0)*(softLightG[d]-df)
	}
	return round(result * 255.0)
}
