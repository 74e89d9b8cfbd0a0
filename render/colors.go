package render

// Default cell colors (Tokyo Night)
var (
	DefaultBg = Opaque(26, 27, 38)
	DefaultFg = Opaque(192, 202, 245)
)

// Table palette used by the demo scene and tools
var (
	Felt       = Opaque(20, 90, 50)
	FeltDark   = Opaque(12, 60, 32)
	CardFace   = Opaque(240, 236, 226)
	CardRed    = Opaque(200, 30, 45)
	CardBlack  = Opaque(20, 20, 24)
	Gold       = Opaque(255, 200, 40)
	ReelFrame  = Opaque(120, 90, 40)
	ButtonFace = Opaque(65, 72, 104)
	HudText    = Opaque(169, 177, 214)

	// Translucent overlays
	Shadow    = Color{0, 0, 0, 110}
	Highlight = Color{255, 255, 255, 48}
	Dimmer    = Color{0, 0, 0, 128}
)
