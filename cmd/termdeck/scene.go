package main

import (
	"math"
	"strings"
	"time"

	"github.com/lixenwraith/termdeck/render"
	"github.com/lixenwraith/termdeck/status"
)

var reelSymbols = []rune{'7', '♠', '♥', '★', '♦', '♣', '$'}

const (
	reelCount  = 3
	reelWidth  = 5
	reelHeight = 3
	reelGap    = 2
	cardWidth  = 7
	cardHeight = 5

	feltPulseHz  = 1.5  // checker pulse, radians per scene second
	feltPulseAmp = 0.04 // relative lightness swing
)

var feltBase = render.ToHSL(render.Felt)

// reel scrolls through reelSymbols; pos is in symbols
type reel struct {
	pos   float64
	speed float64 // symbols per second
}

// table is the demo scene: a felt table with slot reels, two cards and a HUD
type table struct {
	reels    [reelCount]reel
	spinning bool
	elapsed  time.Duration
	hud      bool
	paused   bool
	status   *status.Registry
}

func newTable(reg *status.Registry) *table {
	t := &table{status: reg, hud: true, spinning: true}
	for i := range t.reels {
		t.reels[i].speed = 6 + 3*float64(i)
	}
	return t
}

// toggleSpin stops the reels on whole symbols, or starts them again
func (t *table) toggleSpin() {
	t.spinning = !t.spinning
	if !t.spinning {
		for i := range t.reels {
			t.reels[i].pos = math.Round(t.reels[i].pos)
		}
	}
}

func (t *table) update(dt time.Duration) {
	t.elapsed += dt
	if !t.spinning {
		return
	}
	n := float64(len(reelSymbols))
	for i := range t.reels {
		r := &t.reels[i]
		r.pos = math.Mod(r.pos+r.speed*dt.Seconds(), n)
	}
}

// draw appends the whole scene, back to front
func (t *table) draw(q *render.DrawQueue, cols, rows int) {
	if cols <= 0 || rows <= 0 {
		return
	}
	t.drawFelt(q, cols, rows)

	t.drawTitle(q, cols)

	reelsW := reelCount*reelWidth + (reelCount-1)*reelGap
	rx := (cols - reelsW) / 2
	ry := rows/2 - reelHeight - 1
	t.drawReels(q, rx, ry)

	cy := ry + reelHeight + 3
	cx := cols/2 - cardWidth - 1
	drawCard(q, cx, cy, "A", '♠', render.CardBlack)
	drawCard(q, cx+cardWidth+2, cy, "K", '♥', render.CardRed)

	if t.paused {
		q.FillRect(0, 0, cols, rows, render.Dimmer)
		label := "PAUSED"
		q.Text((cols-len(label))/2, rows/2, label, render.Gold, render.Transparent, render.AttrBold)
	}

	if t.hud {
		t.drawHUD(q, cols, rows)
	}
}

// drawFelt paints every cell opaque, so it also serves as the frame's clear
func (t *table) drawFelt(q *render.DrawQueue, cols, rows int) {
	sec := t.elapsed.Seconds()
	for y := range rows {
		for x := range cols {
			q.Text(x, y, " ", render.Transparent, feltColor(x, y, sec), render.AttrNone)
		}
	}
}

// feltColor shades one cell of the table at scene time sec. Checker squares
// two columns wide pulse in opposite lightness, and the hue swirls slowly
// with a fixed per-square jitter
func feltColor(x, y int, sec float64) render.Color {
	sx, sy := float64(x/2), float64(y)

	phase := fract(math.Sin(sx*12.9898+sy*78.233)*43758.547) * math.Pi
	tt := sec*feltPulseHz + sx/8 + sy/4 + phase

	pulse := feltPulseAmp * math.Sin(tt)
	if (x/2+y)%2 != 0 {
		pulse = -pulse
	}

	h := feltBase
	h.L *= 1 + pulse
	h.H += math.Sin(sx*0.3+sy*0.5+tt*0.2)*3 + fract(math.Sin(sx*12.34+sy*56.78)*43758)*3
	return h.ToColor()
}

func fract(v float64) float64 { return v - math.Floor(v) }

func (t *table) drawTitle(q *render.DrawQueue, cols int) {
	// Slow glow on the title, lightness oscillates with scene time
	phase := math.Sin(t.elapsed.Seconds() * 2)
	glow := render.Lighten(render.Gold, 0.25+0.25*phase)
	title := " T E R M D E C K "
	q.Text((cols-len(title))/2, 1, title, glow, render.FeltDark, render.AttrBold)
}

func (t *table) drawReels(q *render.DrawQueue, x, y int) {
	frameW := reelCount*reelWidth + (reelCount-1)*reelGap + 2
	q.FillRect(x-1, y-1, frameW, reelHeight+2, render.ReelFrame)

	for i := range t.reels {
		r := t.reels[i]
		bx := x + i*(reelWidth+reelGap)
		q.FillRect(bx, y, reelWidth, reelHeight, render.CardFace)

		top := int(math.Floor(r.pos))
		for row := 0; row < reelHeight; row++ {
			sym := reelSymbols[(top+row)%len(reelSymbols)]
			fg := render.CardBlack
			if sym == '♥' || sym == '♦' || sym == '7' {
				fg = render.CardRed
			}
			attrs := render.AttrNone
			if row == reelHeight/2 {
				attrs = render.AttrBold
			}
			q.Text(bx+reelWidth/2, y+row, string(sym), fg, render.Transparent, attrs)
		}

		// Top and bottom rows fade into the frame
		q.FillRect(bx, y, reelWidth, 1, render.Shadow)
		q.FillRect(bx, y+reelHeight-1, reelWidth, 1, render.Shadow)
	}

	// Highlight band sweeps across the reel window
	sweep := int(t.elapsed.Seconds()*8) % (frameW + 4)
	q.FillRect(x-1+sweep-2, y, 2, reelHeight, render.Highlight)
}

// drawCard draws a shadowed card with rank and suit in opposite corners
func drawCard(q *render.DrawQueue, x, y int, rank string, suit rune, fg render.Color) {
	q.FillRect(x+1, y+1, cardWidth, cardHeight, render.Shadow)
	q.FillRect(x, y, cardWidth, cardHeight, render.CardFace)

	corner := rank + string(suit)
	q.Text(x+1, y, corner, fg, render.Transparent, render.AttrBold)
	q.Text(x+cardWidth/2, y+cardHeight/2, string(suit), fg, render.Transparent, render.AttrNone)
	q.Text(x+cardWidth-1-len(rank)-1, y+cardHeight-1, string(suit)+rank, fg, render.Transparent, render.AttrBold)
}

// drawHUD renders the status registry on the bottom row
func (t *table) drawHUD(q *render.DrawQueue, cols, rows int) {
	if t.status == nil {
		return
	}
	var sb strings.Builder
	for i, e := range t.status.Snapshot() {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(e.Key)
		sb.WriteByte('=')
		sb.WriteString(e.Value)
	}
	line := render.Truncate(sb.String(), cols, "…")
	q.FillRect(0, rows-1, cols, 1, render.Color{R: 0, G: 0, B: 0, A: 160})
	q.Text(0, rows-1, line, render.HudText, render.Transparent, render.AttrNone)
}
