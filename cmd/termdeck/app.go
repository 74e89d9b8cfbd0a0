package main

import (
	"log"
	"time"

	"github.com/lixenwraith/termdeck/engine"
	"github.com/lixenwraith/termdeck/render"
	"github.com/lixenwraith/termdeck/status"
	"github.com/lixenwraith/termdeck/terminal"
)

const (
	keyBlendMode = "render.blend"
	fpsStep      = 10
	minFPS       = 5
)

var blendCycle = []render.BlendMode{
	render.BlendSourceOver,
	render.BlendScreen,
	render.BlendMultiply,
	render.BlendOverlay,
	render.BlendSoftLight,
	render.BlendAdd,
	render.BlendMax,
}

// app drains input between frames and feeds the scene to the engine.
// Produce runs on the engine goroutine so engine calls here need no locking
type app struct {
	eng    *engine.Engine
	scene  *table
	events <-chan terminal.Event
	limit  int
	frames int
	blend  int

	blendName *status.AtomicString
}

func newApp(eng *engine.Engine, events <-chan terminal.Event, limit int) *app {
	a := &app{
		eng:       eng,
		scene:     newTable(eng.Status()),
		events:    events,
		limit:     limit,
		blendName: eng.Status().Strings.Get(keyBlendMode),
	}
	a.blendName.Store(render.BlendSourceOver.String())
	return a
}

// setBlend starts the cycle at m
func (a *app) setBlend(m render.BlendMode) {
	for i, b := range blendCycle {
		if b == m {
			a.blend = i
		}
	}
	a.eng.SetBlendMode(m)
	a.blendName.Store(m.String())
}

func (a *app) Produce(dt time.Duration, q *render.DrawQueue) error {
drain:
	for {
		select {
		case ev := <-a.events:
			if !a.handle(ev) {
				return engine.ErrStop
			}
		default:
			break drain
		}
	}

	if a.limit > 0 && a.frames >= a.limit {
		return engine.ErrStop
	}
	a.frames++

	a.scene.paused = a.eng.Paused()
	a.scene.update(dt)
	cols, rows := a.eng.Size()
	a.scene.draw(q, cols, rows)
	return nil
}

// handle applies one input event; false means quit
func (a *app) handle(ev terminal.Event) bool {
	switch ev.Type {
	case terminal.EventClosed, terminal.EventError:
		if ev.Err != nil {
			log.Printf("input: %v", ev.Err)
		}
		return false

	case terminal.EventResize:
		if err := a.eng.Resize(ev.Width, ev.Height); err != nil {
			log.Printf("resize: %v", err)
		}
		return true

	case terminal.EventKey:
	default:
		return true
	}

	switch ev.Key {
	case terminal.KeyEscape, terminal.KeyCtrlC, terminal.KeyCtrlQ:
		return false
	case terminal.KeyCtrlL:
		a.eng.Invalidate()
	case terminal.KeyUp:
		a.stepFPS(fpsStep)
	case terminal.KeyDown:
		a.stepFPS(-fpsStep)
	case terminal.KeyRune:
		switch ev.Rune {
		case 'q':
			return false
		case '+', '=':
			a.stepFPS(fpsStep)
		case '-':
			a.stepFPS(-fpsStep)
		case 'p':
			if a.eng.Paused() {
				a.eng.Resume()
			} else {
				a.eng.Pause()
			}
		case 'b':
			a.blend = (a.blend + 1) % len(blendCycle)
			m := blendCycle[a.blend]
			a.eng.SetBlendMode(m)
			a.blendName.Store(m.String())
		case 'h':
			a.scene.hud = !a.scene.hud
		case ' ':
			a.scene.toggleSpin()
		}
	}
	return true
}

// stepFPS adjusts the cap; an uncapped engine stays uncapped
func (a *app) stepFPS(delta float64) {
	fps := a.eng.TargetFPS()
	if fps <= 0 {
		return
	}
	a.eng.SetTargetFPS(max(fps+delta, minFPS))
}
