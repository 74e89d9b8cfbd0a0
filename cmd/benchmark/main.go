package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/lixenwraith/termdeck/engine"
	"github.com/lixenwraith/termdeck/render"
	"github.com/lixenwraith/termdeck/sink"
	"github.com/lixenwraith/termdeck/terminal"
)

var (
	duration = flag.Duration("duration", 10*time.Second, "Benchmark duration")
	pattern  = flag.String("pattern", "xor", "Pattern: xor|static|overlay")
	tty      = flag.Bool("tty", false, "Present to the terminal instead of an in-memory recorder")
	cols     = flag.Int("cols", 200, "Headless width")
	rows     = flag.Int("rows", 60, "Headless height")
)

func main() {
	flag.Parse()

	w, h := *cols, *rows
	var out engine.Sink
	var term terminal.Terminal

	if *tty {
		term = terminal.New()
		if err := term.Init(); err != nil {
			panic(err)
		}
		defer term.Fini()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigCh
			term.Fini()
			os.Exit(0)
		}()

		w, h = term.Size()
		out = sink.NewANSI(term)
	} else {
		out = sink.NewRecorder(w, h)
	}

	eng := engine.New(engine.Config{
		Cols:           w,
		Rows:           h,
		FPS:            -1,
		ClearEachFrame: true,
		Background:     render.Black,
	}, out)

	var frames int64
	var changed int64
	var frameTotal time.Duration
	start := time.Now()

	for time.Since(start) < *duration {
		fill(eng.Queue(), *pattern, w, h, int(frames))

		stats, err := eng.Frame()
		if err != nil {
			panic(err)
		}
		frameTotal += stats.Duration
		changed += int64(stats.Changes.Cells)
		frames++
	}

	elapsed := time.Since(start)
	if term != nil {
		term.Fini()
	}
	if frames == 0 {
		return
	}

	fmt.Printf("Benchmark Results:\n")
	fmt.Printf("  Pattern:      %s\n", *pattern)
	fmt.Printf("  Resolution:   %dx%d (%d cells)\n", w, h, w*h)
	fmt.Printf("  Total Frames: %d\n", frames)
	fmt.Printf("  Total Time:   %v\n", elapsed)
	fmt.Printf("  Avg FPS:      %.2f\n", float64(frames)/elapsed.Seconds())
	fmt.Printf("  Avg Frame:    %v\n", frameTotal/time.Duration(frames))
	fmt.Printf("  Avg Changed:  %d cells\n", changed/frames)

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	fmt.Printf("  Total Alloc:  %d bytes\n", m.TotalAlloc)
	fmt.Printf("  Mallocs:      %d\n", m.Mallocs)
}

// fill queues one frame of the chosen pattern
func fill(q *render.DrawQueue, pattern string, w, h, frame int) {
	switch pattern {
	case "static":
		// Only the top-left cell changes, the rest should diff away
		q.Text(0, 0, "█", render.Opaque(uint8(frame), 0, 0), render.Black, render.AttrNone)

	case "overlay":
		// Every cell composited under a stack of translucent layers
		for y := 0; y < h; y++ {
			q.Text(0, y, strings.Repeat("░", w), render.Opaque(uint8(y*4), 120, 200), render.Felt, render.AttrNone)
		}
		for i := 0; i < 4; i++ {
			x := (frame*(i+1) + i*13) % max(w, 1)
			q.FillRect(x-w/4, 0, w/2, h, render.Color{R: uint8(60 * i), G: 80, B: 255, A: 64})
		}

	default:
		// One draw call per cell, every cell changes every frame
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				val := x + y + frame
				q.Text(x, y, "█", render.Opaque(uint8(val), uint8(val>>1), uint8(255-val)), render.Black, render.AttrNone)
			}
		}
	}
}
