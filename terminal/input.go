package terminal

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
	"unicode/utf8"
)

// EventType distinguishes input event categories
type EventType uint8

const (
	EventKey EventType = iota
	EventResize
	EventError  // Read error
	EventClosed // Input closed
)

// Event represents a terminal input event
type Event struct {
	Type      EventType
	Key       Key
	Rune      rune
	Modifiers Modifier
	Width     int   // For EventResize
	Height    int   // For EventResize
	Err       error // For EventError
}

// controlKeys maps C0 bytes that carry a dedicated key
var controlKeys = map[byte]Key{
	0x03: KeyCtrlC,
	0x04: KeyCtrlD,
	0x08: KeyBackspace,
	0x09: KeyTab,
	0x0a: KeyEnter,
	0x0d: KeyEnter,
	0x0c: KeyCtrlL,
	0x11: KeyCtrlQ,
	0x1a: KeyCtrlZ,
	0x1b: KeyEscape,
}

// inputReader turns raw backend bytes into key events
type inputReader struct {
	backend Backend
	eventCh chan Event
	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      sync.Mutex
	running bool

	// Carries partial escape or UTF-8 sequences across reads
	buf []byte
}

func newInputReader(backend Backend) *inputReader {
	return &inputReader{
		backend: backend,
		eventCh: make(chan Event, 256),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		buf:     make([]byte, 0, 256),
	}
}

func (r *inputReader) start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	r.running = true
	go r.readLoop()
}

// stop closes the reader; the backend poll interval bounds the wait
func (r *inputReader) stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	close(r.stopCh)
	<-r.doneCh
}

func (r *inputReader) events() <-chan Event {
	return r.eventCh
}

func (r *inputReader) readLoop() {
	defer close(r.doneCh)

	defer func() {
		if p := recover(); p != nil {
			EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mINPUT READER CRASHED: %v\x1b[0m\r\n", p)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	for {
		data, err := r.backend.Read(r.stopCh)
		if err != nil {
			r.sendEvent(Event{Type: EventError, Err: err})
			return
		}

		if len(data) == 0 {
			// Poll timeout: a lone pending ESC is a standalone Escape
			r.flushPendingEscape()
			select {
			case <-r.stopCh:
				r.sendEvent(Event{Type: EventClosed})
				return
			default:
				continue
			}
		}

		r.buf = append(r.buf, data...)
		consumed := r.parseInput(r.buf)
		r.buf = r.buf[:copy(r.buf, r.buf[consumed:])]
	}
}

func (r *inputReader) flushPendingEscape() {
	if len(r.buf) == 1 && r.buf[0] == 0x1b {
		r.sendEvent(Event{Type: EventKey, Key: KeyEscape})
		r.buf = r.buf[:0]
	}
}

// parseInput emits events for complete sequences and returns bytes consumed
func (r *inputReader) parseInput(data []byte) int {
	i := 0
	for i < len(data) {
		b := data[i]

		switch {
		case b >= 0x20 && b < 0x7f:
			r.sendEvent(Event{Type: EventKey, Key: KeyRune, Rune: rune(b)})
			i++

		case b == 0x1b:
			consumed, ev := parseEscape(data[i:])
			if consumed == 0 {
				return i
			}
			if ev.Key != KeyNone {
				r.sendEvent(ev)
			}
			i += consumed

		case b < 0x20:
			if ev, ok := parseControl(b); ok {
				r.sendEvent(ev)
			}
			i++

		case b == 0x7f:
			r.sendEvent(Event{Type: EventKey, Key: KeyBackspace})
			i++

		default:
			if !utf8.FullRune(data[i:]) {
				return i
			}
			rn, size := utf8.DecodeRune(data[i:])
			r.sendEvent(Event{Type: EventKey, Key: KeyRune, Rune: rn})
			i += size
		}
	}
	return i
}

// parseEscape returns 0 when the sequence is incomplete
func parseEscape(data []byte) (int, Event) {
	if len(data) < 2 {
		return 0, Event{}
	}

	switch c := data[1]; {
	case c == 0x1b:
		return 2, Event{Type: EventKey, Key: KeyEscape, Modifiers: ModAlt}
	case c == '[':
		return parseCSI(data)
	case c == 'O':
		return parseSS3(data)
	case c < 0x20:
		ev, _ := parseControl(c)
		ev.Modifiers |= ModAlt
		return 2, ev
	case c < 0x7f:
		return 2, Event{Type: EventKey, Key: KeyRune, Rune: rune(c), Modifiers: ModAlt}
	}
	// ESC followed by a high byte: report Escape and let the byte parse alone
	return 1, Event{Type: EventKey, Key: KeyEscape}
}

// maxCSILen bounds the scan for a CSI terminator
const maxCSILen = 16

func isCSIFinal(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~'
}

// parseCSI consumes unknown but well-formed sequences as KeyNone
func parseCSI(data []byte) (int, Event) {
	limit := min(len(data), maxCSILen)
	for end := 2; end < limit; end++ {
		b := data[end]
		if isCSIFinal(b) {
			if key, mod, ok := lookupCSI(data[2 : end+1]); ok {
				return end + 1, Event{Type: EventKey, Key: key, Modifiers: mod}
			}
			return end + 1, Event{Type: EventKey, Key: KeyNone}
		}
		if b < 0x20 || b > 0x7e {
			// Malformed, drop the introducer
			return 2, Event{Type: EventKey, Key: KeyNone}
		}
	}
	if len(data) >= maxCSILen {
		return maxCSILen, Event{Type: EventKey, Key: KeyNone}
	}
	return 0, Event{}
}

func parseSS3(data []byte) (int, Event) {
	if len(data) < 3 {
		return 0, Event{}
	}
	if key, mod, ok := lookupSS3(data[2:3]); ok {
		return 3, Event{Type: EventKey, Key: key, Modifiers: mod}
	}
	return 3, Event{Type: EventKey, Key: KeyNone}
}

// parseControl maps C0 bytes; unmapped ones report ok=false
func parseControl(b byte) (Event, bool) {
	if key, ok := controlKeys[b]; ok {
		return Event{Type: EventKey, Key: key}, true
	}
	return Event{Type: EventKey, Key: KeyNone}, false
}

// sendEvent never blocks the reader; a full queue drops the event
func (r *inputReader) sendEvent(ev Event) {
	select {
	case r.eventCh <- ev:
	default:
	}
}
