package terminal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// Attr represents text attributes (bitmask)
type Attr uint8

const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1 << 0
	AttrDim       Attr = 1 << 1
	AttrItalic    Attr = 1 << 2
	AttrUnderline Attr = 1 << 3
	AttrBlink     Attr = 1 << 4
	AttrReverse   Attr = 1 << 5
	AttrHidden    Attr = 1 << 6
)

// AttrStyle masks every bit the SGR writer understands
const AttrStyle Attr = AttrBold | AttrDim | AttrItalic | AttrUnderline | AttrBlink | AttrReverse | AttrHidden

// Cell is an opaque terminal cell as written to the wire
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Attrs Attr
}

// Change is a single cell update at a screen position
type Change struct {
	X, Y int
	Cell Cell
}

// Terminal is a raw-mode display that accepts sparse cell updates
type Terminal interface {
	// Init enters raw mode and the alternate screen, hides the cursor
	Init() error

	// Fini restores the terminal. Safe to call more than once
	Fini()

	Size() (width, height int)
	ColorMode() ColorMode

	// WriteCells emits changes in order and flushes; off-screen changes are dropped
	WriteCells(changes []Change) error

	// Clear paints the whole screen with bg
	Clear(bg RGB)

	// Sync blanks the physical screen so the next full frame repaints it
	Sync()

	// PollEvent blocks for the next key, resize or closing event
	PollEvent() Event

	// PostEvent injects a synthetic event, dropped if the queue is full
	PostEvent(Event)
}

type termState uint8

const (
	stateNew termState = iota
	stateRunning
	stateClosed
)

// termImpl implements Terminal on a Backend
type termImpl struct {
	backend Backend
	output  *outputBuffer
	input   *inputReader

	// Resizes coalesce: the handler stores the size and pokes a 1-slot signal
	pendingSize atomic.Uint64
	resizeSig   chan struct{}
	synthetic   chan Event

	mu    sync.Mutex
	state termState
}

// New creates a Terminal on stdin/stdout, detecting color mode when none is given
func New(colorMode ...ColorMode) Terminal {
	return newTerm(newBackend(), colorMode...)
}

func newTerm(b Backend, colorMode ...ColorMode) *termImpl {
	mode := DetectColorMode()
	if len(colorMode) > 0 {
		mode = colorMode[0]
	}

	return &termImpl{
		backend:   b,
		output:    newOutputBuffer(backendWriter{b}, mode),
		resizeSig: make(chan struct{}, 1),
		synthetic: make(chan Event, 16),
	}
}

// backendWriter adapts Backend.Write to io.Writer for the buffered output
type backendWriter struct {
	b Backend
}

func (w backendWriter) Write(p []byte) (int, error) {
	if err := w.b.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (t *termImpl) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != stateNew {
		return nil
	}

	if err := t.backend.Init(); err != nil {
		return fmt.Errorf("backend init: %w", err)
	}

	t.output.resize(t.backend.Size())
	t.backend.SetResizeHandler(t.onResize)

	t.backend.Write(csiAltScreenEnter)
	t.backend.Write(csiCursorHide)
	// Writing the bottom-right cell must not scroll
	t.backend.Write(csiAutoWrapOff)
	t.output.clear(RGBBlack)

	t.input = newInputReader(t.backend)
	t.input.start()

	t.state = stateRunning
	return nil
}

func (t *termImpl) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != stateRunning {
		return
	}
	t.state = stateClosed

	t.input.stop()

	t.backend.Write(csiCursorShow)
	t.backend.Write(csiAltScreenExit)
	// Main buffer gets wrapping back after the alt screen is gone
	t.backend.Write(csiAutoWrapOn)
	t.backend.Write(csiSGR0)
	t.backend.Fini()
}

// onResize runs on the signal goroutine; only the latest size survives
func (t *termImpl) onResize(w, h int) {
	t.pendingSize.Store(uint64(uint32(w))<<32 | uint64(uint32(h)))
	select {
	case t.resizeSig <- struct{}{}:
	default:
	}
}

func (t *termImpl) resizeEvent() Event {
	packed := t.pendingSize.Load()
	return Event{Type: EventResize, Width: int(packed >> 32), Height: int(uint32(packed))}
}

func (t *termImpl) Size() (int, int) {
	return t.backend.Size()
}

func (t *termImpl) ColorMode() ColorMode {
	return t.output.colorMode
}

// WriteCells holds the lock for the whole write so Clear and Sync cannot interleave
func (t *termImpl) WriteCells(changes []Change) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != stateRunning {
		return nil
	}

	if w, h := t.backend.Size(); w != t.output.width || h != t.output.height {
		t.output.resize(w, h)
	}
	return t.output.writeChanges(changes)
}

func (t *termImpl) Clear(bg RGB) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == stateRunning {
		t.output.clear(bg)
	}
}

// Sync also forgets cursor and style state
func (t *termImpl) Sync() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != stateRunning {
		return
	}
	t.output.resize(t.backend.Size())
	t.output.clear(RGBBlack)
}

// PollEvent prefers synthetic events so a posted close is never starved by input
func (t *termImpl) PollEvent() Event {
	select {
	case ev := <-t.synthetic:
		return ev
	default:
	}

	select {
	case ev := <-t.synthetic:
		return ev
	case ev := <-t.input.events():
		return ev
	case <-t.resizeSig:
		return t.resizeEvent()
	}
}

func (t *termImpl) PostEvent(ev Event) {
	select {
	case t.synthetic <- ev:
	default:
	}
}

// EmergencyReset restores a sane terminal from a panic handler when Fini
// cannot run normally
func EmergencyReset(w io.Writer) {
	for _, seq := range [][]byte{csiCursorShow, csiAltScreenExit, csiSGR0, csiAutoWrapOn, csiRIS} {
		w.Write(seq)
	}
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
