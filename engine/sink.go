package engine

import "github.com/lixenwraith/termdeck/render"

// Sink receives each frame's changed cells. The slice is reused next frame
type Sink interface {
	Present(changes []render.CellChange) error
}

// Syncer is implemented by sinks that must repaint after a resize
type Syncer interface {
	Sync() error
}

// SinkFunc adapts a function to Sink
type SinkFunc func(changes []render.CellChange) error

func (f SinkFunc) Present(changes []render.CellChange) error { return f(changes) }
