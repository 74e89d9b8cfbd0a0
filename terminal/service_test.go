package terminal

import (
	"testing"
	"time"
)

func TestServicePumpsEvents(t *testing.T) {
	b := &memBackend{w: 10, h: 4, input: make(chan []byte, 1)}
	svc := NewService(newTerm(b, ColorMode256))
	if err := svc.Start(); err != nil {
		t.Fatal(err)
	}

	b.input <- []byte("x")
	select {
	case ev := <-svc.Events():
		if ev.Type != EventKey || ev.Key != KeyRune || ev.Rune != 'x' {
			t.Errorf("Expected rune x, got %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("Expected a key event")
	}

	b.resize(12, 6)
	select {
	case ev := <-svc.Events():
		if ev.Type != EventResize || ev.Width != 12 || ev.Height != 6 {
			t.Errorf("Expected resize 12x6, got %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("Expected a resize event")
	}

	svc.Stop()
	svc.Stop()
}
