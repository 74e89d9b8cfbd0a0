package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/termdeck/config"
	"github.com/lixenwraith/termdeck/engine"
	"github.com/lixenwraith/termdeck/sink"
	"github.com/lixenwraith/termdeck/terminal"
)

// frontend is an initialized output backend plus its normalized input stream
type frontend interface {
	Size() (cols, rows int)
	Sink() engine.Sink
	Events() <-chan terminal.Event
	Close()
}

func openFrontend(backend string, mode terminal.ColorMode) (frontend, error) {
	switch backend {
	case config.BackendTcell:
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("tcell screen: %w", err)
		}
		return newTcellFrontend(screen)
	default:
		svc := terminal.NewService(terminal.New(mode))
		if err := svc.Start(); err != nil {
			return nil, err
		}
		return &ansiFrontend{svc: svc, sink: sink.NewANSI(svc.Terminal())}, nil
	}
}

// ansiFrontend drives the built-in raw terminal
type ansiFrontend struct {
	svc  *terminal.Service
	sink *sink.ANSI
}

func (a *ansiFrontend) Size() (int, int)              { return a.svc.Terminal().Size() }
func (a *ansiFrontend) Sink() engine.Sink             { return a.sink }
func (a *ansiFrontend) Events() <-chan terminal.Event { return a.svc.Events() }
func (a *ansiFrontend) Close()                        { a.svc.Stop() }

// tcellFrontend drives a tcell screen and translates its events
type tcellFrontend struct {
	screen tcell.Screen
	sink   *sink.Tcell
	events chan terminal.Event
	done   chan struct{}
}

func newTcellFrontend(screen tcell.Screen) (*tcellFrontend, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("tcell init: %w", err)
	}
	screen.HideCursor()
	screen.Clear()

	f := &tcellFrontend{
		screen: screen,
		sink:   sink.NewTcell(screen),
		events: make(chan terminal.Event, 256),
		done:   make(chan struct{}),
	}
	go f.pump()
	return f, nil
}

func (f *tcellFrontend) pump() {
	for {
		ev := f.screen.PollEvent()
		if ev == nil {
			select {
			case f.events <- terminal.Event{Type: terminal.EventClosed}:
			default:
			}
			return
		}

		te, ok := translateTcell(ev)
		if !ok {
			continue
		}
		select {
		case f.events <- te:
		case <-f.done:
			return
		}
	}
}

func (f *tcellFrontend) Size() (int, int)              { return f.screen.Size() }
func (f *tcellFrontend) Sink() engine.Sink             { return f.sink }
func (f *tcellFrontend) Events() <-chan terminal.Event { return f.events }

func (f *tcellFrontend) Close() {
	close(f.done)
	f.screen.Fini()
}

var tcellKeys = map[tcell.Key]terminal.Key{
	tcell.KeyEscape:     terminal.KeyEscape,
	tcell.KeyEnter:      terminal.KeyEnter,
	tcell.KeyTab:        terminal.KeyTab,
	tcell.KeyBacktab:    terminal.KeyBacktab,
	tcell.KeyBackspace:  terminal.KeyBackspace,
	tcell.KeyBackspace2: terminal.KeyBackspace,
	tcell.KeyDelete:     terminal.KeyDelete,
	tcell.KeyUp:         terminal.KeyUp,
	tcell.KeyDown:       terminal.KeyDown,
	tcell.KeyLeft:       terminal.KeyLeft,
	tcell.KeyRight:      terminal.KeyRight,
	tcell.KeyHome:       terminal.KeyHome,
	tcell.KeyEnd:        terminal.KeyEnd,
	tcell.KeyPgUp:       terminal.KeyPageUp,
	tcell.KeyPgDn:       terminal.KeyPageDown,
	tcell.KeyCtrlC:      terminal.KeyCtrlC,
	tcell.KeyCtrlD:      terminal.KeyCtrlD,
	tcell.KeyCtrlL:      terminal.KeyCtrlL,
	tcell.KeyCtrlQ:      terminal.KeyCtrlQ,
	tcell.KeyCtrlZ:      terminal.KeyCtrlZ,
}

// translateTcell maps key and resize events; everything else is dropped
func translateTcell(ev tcell.Event) (terminal.Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		return terminal.Event{Type: terminal.EventResize, Width: w, Height: h}, true

	case *tcell.EventKey:
		var mods terminal.Modifier
		if ev.Modifiers()&tcell.ModShift != 0 {
			mods |= terminal.ModShift
		}
		if ev.Modifiers()&tcell.ModAlt != 0 {
			mods |= terminal.ModAlt
		}
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			mods |= terminal.ModCtrl
		}

		if ev.Key() == tcell.KeyRune {
			return terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: ev.Rune(), Modifiers: mods}, true
		}
		if k, ok := tcellKeys[ev.Key()]; ok {
			return terminal.Event{Type: terminal.EventKey, Key: k, Modifiers: mods}, true
		}
	}
	return terminal.Event{}, false
}
