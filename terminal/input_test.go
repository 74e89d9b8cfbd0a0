package terminal

import (
	"testing"
	"time"
)

func drain(r *inputReader) []Event {
	var evs []Event
	for {
		select {
		case ev := <-r.eventCh:
			evs = append(evs, ev)
		default:
			return evs
		}
	}
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantKey  Key
		wantRune rune
		wantMod  Modifier
	}{
		{"ascii", "a", KeyRune, 'a', ModNone},
		{"utf8", "é", KeyRune, 'é', ModNone},
		{"enter", "\r", KeyEnter, 0, ModNone},
		{"ctrl-c", "\x03", KeyCtrlC, 0, ModNone},
		{"del as backspace", "\x7f", KeyBackspace, 0, ModNone},
		{"arrow up", "\x1b[A", KeyUp, 0, ModNone},
		{"ctrl right", "\x1b[1;5C", KeyRight, 0, ModCtrl},
		{"page down", "\x1b[6~", KeyPageDown, 0, ModNone},
		{"ss3 left", "\x1bOD", KeyLeft, 0, ModNone},
		{"backtab", "\x1b[Z", KeyBacktab, 0, ModShift},
		{"alt-x", "\x1bx", KeyRune, 'x', ModAlt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newInputReader(nil)
			data := []byte(tt.in)
			if n := r.parseInput(data); n != len(data) {
				t.Fatalf("Expected %d bytes consumed, got %d", len(data), n)
			}
			evs := drain(r)
			if len(evs) != 1 {
				t.Fatalf("Expected 1 event, got %d", len(evs))
			}
			ev := evs[0]
			if ev.Key != tt.wantKey || ev.Rune != tt.wantRune || ev.Modifiers != tt.wantMod {
				t.Errorf("Expected {%v %q %v}, got {%v %q %v}", tt.wantKey, tt.wantRune, tt.wantMod, ev.Key, ev.Rune, ev.Modifiers)
			}
		})
	}
}

func TestParseInputIncomplete(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want int
	}{
		{"lone esc", []byte{0x1b}, 0},
		{"partial csi", []byte("\x1b[1;5"), 0},
		{"partial utf8", []byte{'a', 0xc3}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newInputReader(nil)
			if got := r.parseInput(tt.in); got != tt.want {
				t.Errorf("Expected %d consumed, got %d", tt.want, got)
			}
		})
	}
}

func TestParseInputUnknownCSISwallowed(t *testing.T) {
	r := newInputReader(nil)
	data := []byte("\x1b[99zq")
	if n := r.parseInput(data); n != len(data) {
		t.Fatalf("Expected all bytes consumed, got %d", n)
	}
	evs := drain(r)
	if len(evs) != 1 || evs[0].Rune != 'q' {
		t.Errorf("Expected only the trailing rune, got %+v", evs)
	}
}

// memBackend is an in-memory Backend fed through a channel
type memBackend struct {
	w, h   int
	input  chan []byte
	output []byte
	resize func(width, height int)
}

func (b *memBackend) Init() error { return nil }
func (b *memBackend) Fini() {}
func (b *memBackend) Size() (int, int) { return b.w, b.h }
func (b *memBackend) SetResizeHandler(h func(width, height int)) { b.resize = h }
func (b *memBackend) Write(p []byte) error { b.output = append(b.output, p...); return nil }
func (b *memBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	select {
	case <-stopCh:
		return nil, nil
	case data := <-b.input:
		return data, nil
	case <-time.After(10 * time.Millisecond):
		return nil, nil
	}
}

func TestReadLoopStandaloneEscape(t *testing.T) {
	b := &memBackend{w: 10, h: 4, input: make(chan []byte, 1)}
	r := newInputReader(b)
	r.start()
	defer r.stop()

	b.input <- []byte{0x1b}

	select {
	case ev := <-r.events():
		if ev.Key != KeyEscape {
			t.Errorf("Expected KeyEscape, got %v", ev.Key)
		}
	case <-time.After(time.Second):
		t.Fatal("Expected escape after poll timeout")
	}
}

func TestTerminalWriteCellsUsesBackendSize(t *testing.T) {
	b := &memBackend{w: 2, h: 1, input: make(chan []byte)}
	term := newTerm(b, ColorModeTrueColor)
	if err := term.Init(); err != nil {
		t.Fatal(err)
	}
	defer term.Fini()

	b.output = b.output[:0]
	err := term.WriteCells([]Change{
		{X: 1, Y: 0, Cell: Cell{Rune: 'k'}},
		{X: 2, Y: 0, Cell: Cell{Rune: 'n'}},
	})
	if err != nil {
		t.Fatal(err)
	}

	out := string(b.output)
	if want := "\x1b[1;2H"; len(out) < len(want) || out[:len(want)] != want {
		t.Errorf("Expected output to start with %q, got %q", want, out)
	}
	for _, c := range out {
		if c == 'n' {
			t.Errorf("Expected clipped change to be dropped, got %q", out)
		}
	}
}

func TestKeyString(t *testing.T) {
	if got := KeyPageDown.String(); got != "PageDown" {
		t.Errorf("Expected PageDown, got %q", got)
	}
	if got := Key(999).String(); got != "Key(999)" {
		t.Errorf("Expected Key(999), got %q", got)
	}
}

func TestResizeLatestWins(t *testing.T) {
	b := &memBackend{w: 10, h: 4, input: make(chan []byte)}
	term := newTerm(b, ColorModeTrueColor)
	if err := term.Init(); err != nil {
		t.Fatal(err)
	}
	defer term.Fini()

	b.resize(20, 5)
	b.resize(132, 43)

	ev := term.PollEvent()
	if ev.Type != EventResize || ev.Width != 132 || ev.Height != 43 {
		t.Errorf("Expected resize 132x43, got %+v", ev)
	}

	term.PostEvent(Event{Type: EventClosed})
	if ev := term.PollEvent(); ev.Type != EventClosed {
		t.Errorf("Expected only one coalesced resize, got %+v", ev)
	}
}
