package render

import "testing"

var allModes = []BlendMode{
	BlendSourceOver, BlendAdd, BlendScreen, BlendMultiply, BlendMax, BlendOverlay, BlendSoftLight,
}

func TestBlendSourceOverIdentities(t *testing.T) {
	bottoms := []Color{Black, White, {10, 200, 30, 90}, Transparent}
	tops := []Color{Opaque(255, 0, 0), {1, 2, 3, 255}, White}

	for _, b := range bottoms {
		for _, top := range tops {
			if got := Over(b, top); got != top {
				t.Errorf("opaque top: expected %v, got %v", top, got)
			}
			hidden := top
			hidden.A = 0
			if got := Over(b, hidden); got != b {
				t.Errorf("transparent top: expected %v, got %v", b, got)
			}
		}
	}
}

func TestBlendSourceOverValues(t *testing.T) {
	halfBlack := Color{0, 0, 0, 128}
	tests := []struct {
		name        string
		bottom, top Color
		want        Color
	}{
		{"half black over red", Opaque(255, 0, 0), halfBlack, Opaque(127, 0, 0)},
		{"half black over black", Black, halfBlack, Black},
		{"half white over transparent", Transparent, Color{255, 255, 255, 128}, Color{255, 255, 255, 128}},
		{"two halves stack", Color{0, 0, 255, 128}, Color{255, 0, 0, 128}, Color{170, 0, 85, 192}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Over(tt.bottom, tt.top); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestBlendSourceOverDeterministic(t *testing.T) {
	a, b := Color{33, 77, 200, 140}, Color{250, 10, 90, 61}
	first := Over(a, b)
	for i := 0; i < 100; i++ {
		if got := Over(a, b); got != first {
			t.Fatalf("Expected stable result %v, got %v", first, got)
		}
	}
}

func TestMixTransparentTopIsNoop(t *testing.T) {
	bottom := Color{40, 50, 60, 200}
	for _, m := range allModes {
		if got := Mix(m, bottom, Color{255, 255, 255, 0}); got != bottom {
			t.Errorf("%v: expected %v, got %v", m, bottom, got)
		}
	}
}

func TestMixOpaqueModes(t *testing.T) {
	bottom := Opaque(100, 100, 100)
	top := Opaque(100, 200, 0)
	tests := []struct {
		mode BlendMode
		want Color
	}{
		{BlendSourceOver, top},
		{BlendAdd, Opaque(200, 255, 100)},
		{BlendMax, Opaque(100, 200, 100)},
		{BlendMultiply, Opaque(39, 78, 0)},
		{BlendScreen, Opaque(161, 222, 100)},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			if got := Mix(tt.mode, bottom, top); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseBlendMode(t *testing.T) {
	for _, m := range allModes {
		got, err := ParseBlendMode(m.String())
		if err != nil || got != m {
			t.Errorf("Expected %v, got %v (err %v)", m, got, err)
		}
	}
	if _, err := ParseBlendMode("dissolve"); err == nil {
		t.Error("Expected error for unknown mode")
	}
}

func TestLerp(t *testing.T) {
	a, b := Color{0, 0, 0, 0}, Color{200, 100, 50, 255}
	if got := Lerp(a, b, -1); got != a {
		t.Errorf("t<0: expected %v, got %v", a, got)
	}
	if got := Lerp(a, b, 2); got != b {
		t.Errorf("t>1: expected %v, got %v", b, got)
	}
	if got, want := Lerp(a, b, 0.5), (Color{100, 50, 25, 128}); got != want {
		t.Errorf("t=0.5: expected %v, got %v", want, got)
	}
}

func TestGrayscaleKeepsAlpha(t *testing.T) {
	if got, want := Grayscale(Color{255, 0, 0, 9}), (Color{76, 76, 76, 9}); got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
