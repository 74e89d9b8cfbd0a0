package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lixenwraith/termdeck/engine"
	"github.com/lixenwraith/termdeck/render"
	"github.com/lixenwraith/termdeck/sink"
	"github.com/lixenwraith/termdeck/terminal"
)

const maxLog = 10

// describe formats an event for the log pane
func describe(ev terminal.Event) string {
	switch ev.Type {
	case terminal.EventResize:
		return fmt.Sprintf("resize %dx%d", ev.Width, ev.Height)
	case terminal.EventKey:
		var mods []string
		if ev.Modifiers&terminal.ModCtrl != 0 {
			mods = append(mods, "Ctrl")
		}
		if ev.Modifiers&terminal.ModAlt != 0 {
			mods = append(mods, "Alt")
		}
		if ev.Modifiers&terminal.ModShift != 0 {
			mods = append(mods, "Shift")
		}
		name := ev.Key.String()
		if ev.Key == terminal.KeyRune {
			name = fmt.Sprintf("%q U+%04X", ev.Rune, ev.Rune)
		}
		if len(mods) > 0 {
			return strings.Join(mods, "+") + " " + name
		}
		return name
	case terminal.EventError:
		return fmt.Sprintf("error %v", ev.Err)
	}
	return "closed"
}

func main() {
	svc := terminal.NewService(terminal.New())
	if err := svc.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "init failed: %v\n", err)
		os.Exit(1)
	}
	defer svc.Stop()

	w, h := svc.Terminal().Size()
	eng := engine.New(engine.Config{
		Cols:           w,
		Rows:           h,
		FPS:            30,
		ClearEachFrame: true,
		Background:     render.Opaque(20, 20, 30),
	}, sink.NewANSI(svc.Terminal()))

	eventLog := make([]string, 0, maxLog)
	addLog := func(s string) {
		if len(eventLog) >= maxLog {
			copy(eventLog, eventLog[1:])
			eventLog = eventLog[:maxLog-1]
		}
		eventLog = append(eventLog, time.Now().Format("15:04:05.000")+"  "+s)
	}

	produce := func(_ time.Duration, q *render.DrawQueue) error {
	drain:
		for {
			select {
			case ev := <-svc.Events():
				addLog(describe(ev))
				switch {
				case ev.Type == terminal.EventClosed, ev.Type == terminal.EventError:
					return engine.ErrStop
				case ev.Type == terminal.EventKey && ev.Key == terminal.KeyCtrlC:
					return engine.ErrStop
				case ev.Type == terminal.EventResize:
					eng.Resize(ev.Width, ev.Height)
				}
			default:
				break drain
			}
		}

		cols, _ := eng.Size()
		title := render.Truncate("Input Test - press keys, resize the window - Ctrl+C to quit", cols, "…")
		q.FillRect(0, 0, cols, 1, render.Opaque(40, 40, 60))
		q.Text((cols-len(title))/2, 0, title, render.Opaque(200, 200, 200), render.Transparent, render.AttrBold)

		for i, line := range eventLog {
			fg := render.HudText
			if i == len(eventLog)-1 {
				fg = render.Gold
			}
			q.Text(2, 2+i, render.Truncate(line, cols-4, "…"), fg, render.Transparent, render.AttrNone)
		}
		return nil
	}

	if err := eng.Run(context.Background(), engine.ProducerFunc(produce)); err != nil {
		svc.Stop()
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
