// @focus: #sys { frame }
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/termdeck/render"
	"github.com/lixenwraith/termdeck/status"
	"github.com/prometheus/client_golang/prometheus"
)

// fpsSmoothing is the EMA factor for the measured frame rate
const fpsSmoothing = 0.1

// ErrStop ends Run cleanly when returned by a Producer
var ErrStop = errors.New("engine: stop")

// Config is the frame loop's tuning
type Config struct {
	Cols, Rows     int
	FPS            float64 // <= 0 runs uncapped
	PollInterval   time.Duration
	SpinReserve    time.Duration
	Blend          render.BlendMode
	ClearEachFrame bool
	Background     render.Color
}

// Producer appends the frame's draw calls; dt is scene time since the last frame
type Producer interface {
	Produce(dt time.Duration, q *render.DrawQueue) error
}

// ProducerFunc adapts a function to Producer
type ProducerFunc func(dt time.Duration, q *render.DrawQueue) error

func (f ProducerFunc) Produce(dt time.Duration, q *render.DrawQueue) error { return f(dt, q) }

// FrameStats describes one presented frame
type FrameStats struct {
	Frame    uint64
	Calls    int
	Changes  render.DiffStats
	Full     bool
	Duration time.Duration
}

// Option configures an Engine
type Option func(*Engine)

// WithClock replaces the real clock, mainly for tests
func WithClock(c TimeProvider) Option {
	return func(e *Engine) { e.clock = c }
}

// WithRegisterer registers the frame metrics on reg
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(e *Engine) { e.reg = reg }
}

// WithStatus mirrors frame counters into an in-process registry
func WithStatus(r *status.Registry) Option {
	return func(e *Engine) { e.status = r }
}

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithFilters applies post-process filters after compositing, in order
func WithFilters(f ...render.Filter) Option {
	return func(e *Engine) { e.filters = append(e.filters, f...) }
}

// Engine owns the screen, draw queue, compositor and pacer of one frame loop.
// It is not safe for concurrent use; feed resize and input between frames
type Engine struct {
	cfg        Config
	sink       Sink
	screen     *render.Screen
	compositor *render.Compositor
	queue      *render.DrawQueue
	filters    []render.Filter

	clock TimeProvider
	pacer *FramePacer
	scene *PausableClock

	reg     prometheus.Registerer
	metrics *Metrics
	status  *status.Registry
	logger  *log.Logger

	frame        uint64
	lastScene    time.Duration
	lastOverruns uint64

	statFrames   *atomic.Int64
	statFPS      *status.AtomicFloat
	statChanged  *atomic.Int64
	statCalls    *atomic.Int64
	statOverruns *atomic.Int64
	statSize     *status.AtomicString
	statPaused   *atomic.Bool
}

// New builds an engine presenting to sink
func New(cfg Config, sink Sink, opts ...Option) *Engine {
	e := &Engine{
		cfg:  cfg,
		sink: sink,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.clock == nil {
		e.clock = NewMonotonicTimeProvider()
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard, "", 0)
	}
	if e.status == nil {
		e.status = status.NewRegistry()
	}

	e.metrics = NewMetrics(e.reg)
	e.screen = render.NewScreen(cfg.Cols, cfg.Rows)
	e.compositor = render.NewCompositor(cfg.Blend)
	e.queue = render.NewDrawQueue(256)
	e.pacer = NewFramePacer(e.clock, cfg.FPS,
		WithPollInterval(cfg.PollInterval),
		WithSpinReserve(cfg.SpinReserve),
	)
	e.scene = NewPausableClock(e.clock)

	e.statFrames = e.status.Ints.Get(status.KeyFrameCount)
	e.statFPS = e.status.Floats.Get(status.KeyFrameFPS)
	e.statChanged = e.status.Ints.Get(status.KeyFrameChanged)
	e.statCalls = e.status.Ints.Get(status.KeyFrameCalls)
	e.statOverruns = e.status.Ints.Get(status.KeyPacerOverruns)
	e.statSize = e.status.Strings.Get(status.KeyScreenSize)
	e.statPaused = e.status.Bools.Get(status.KeyPaused)

	e.recordSize()
	return e
}

// Queue is this frame's draw queue; it is reset after each Frame
func (e *Engine) Queue() *render.DrawQueue { return e.queue }

// Submit appends draw calls to the queue
func (e *Engine) Submit(calls ...render.DrawCall) { e.queue.Push(calls...) }

// Screen exposes the double buffer for inspection
func (e *Engine) Screen() *render.Screen { return e.screen }

// Status returns the registry the engine writes to
func (e *Engine) Status() *status.Registry { return e.status }

// Size returns (cols, rows)
func (e *Engine) Size() (int, int) { return e.screen.Size() }

// Resize blanks both buffers at the new size; the next frame is a full redraw
func (e *Engine) Resize(cols, rows int) error {
	if c, r := e.screen.Size(); c == cols && r == rows {
		return nil
	}

	e.logger.Printf("resize %dx%d", cols, rows)
	e.screen.Resize(cols, rows)
	e.recordSize()

	if s, ok := e.sink.(Syncer); ok {
		if err := s.Sync(); err != nil {
			return fmt.Errorf("sync sink after resize: %w", err)
		}
	}
	return nil
}

// Invalidate forces the next frame to re-emit every cell
func (e *Engine) Invalidate() { e.screen.Invalidate() }

// SetTargetFPS reconfigures the pacer; fps <= 0 runs uncapped
func (e *Engine) SetTargetFPS(fps float64) {
	e.cfg.FPS = fps
	e.pacer.Configure(fps)
	e.logger.Printf("target fps %.1f", fps)
}

// TargetFPS returns the configured rate
func (e *Engine) TargetFPS() float64 { return e.cfg.FPS }

// SetBlendMode swaps the compositor's blend mode
func (e *Engine) SetBlendMode(m render.BlendMode) { e.compositor.SetMode(m) }

// Pause freezes scene time; frames keep rendering
func (e *Engine) Pause() {
	e.scene.Pause()
	e.statPaused.Store(true)
}

func (e *Engine) Resume() {
	e.scene.Resume()
	e.statPaused.Store(false)
}

func (e *Engine) Paused() bool { return e.scene.IsPaused() }

// FPS is the smoothed measured frame rate
func (e *Engine) FPS() float64 { return e.statFPS.Get() }

// Tick waits for the next frame boundary and returns the real frame delta
func (e *Engine) Tick() time.Duration {
	dt := e.pacer.WaitForNextFrame()

	if dt > 0 {
		e.statFPS.Smooth(float64(time.Second)/float64(dt), fpsSmoothing)
	}

	if o := e.pacer.Overruns(); o != e.lastOverruns {
		e.metrics.Overruns.Add(float64(o - e.lastOverruns))
		e.logger.Printf("pacer overrun, %d total", o)
		e.lastOverruns = o
		e.statOverruns.Store(int64(o))
	}
	return dt
}

// SceneDelta returns scene time elapsed since the previous call, zero while paused
func (e *Engine) SceneDelta() time.Duration {
	now := e.scene.Elapsed()
	dt := now - e.lastScene
	e.lastScene = now
	return dt
}

// Frame composites the queue, grades a copy through the filters, diffs it
// against the previous frame, presents the changes and commits. The queue is
// consumed even when presenting fails; the failed composite is rolled back so
// the calls are not stacked twice on a retry
func (e *Engine) Frame() (FrameStats, error) {
	start := e.clock.Now()
	e.frame++

	cur := e.screen.Current()
	if e.cfg.ClearEachFrame {
		e.screen.ClearTo(e.cfg.Background)
	}

	calls := e.queue.Calls()
	e.compositor.CompositeAll(cur, calls)
	e.screen.Grade(e.filters...)

	full := e.screen.NeedsFullRedraw()
	changes := e.screen.Diff()

	stats := FrameStats{
		Frame:   e.frame,
		Calls:   len(calls),
		Changes: render.Stats(changes),
		Full:    full,
	}
	e.queue.Reset()

	if len(changes) > 0 {
		if err := e.sink.Present(changes); err != nil {
			e.metrics.PresentErrors.Inc()
			e.screen.Rollback()
			e.logger.Printf("present frame %d: %v", e.frame, err)
			return stats, fmt.Errorf("present frame %d: %w", e.frame, err)
		}
	}
	e.screen.Commit()

	stats.Duration = e.clock.Now().Sub(start)
	e.metrics.observe(stats)
	e.statFrames.Store(int64(e.frame))
	e.statChanged.Store(int64(stats.Changes.Cells))
	e.statCalls.Store(int64(stats.Calls))
	return stats, nil
}

// Run drives tick → produce → frame until ctx is done or the producer returns ErrStop
func (e *Engine) Run(ctx context.Context, p Producer) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		e.Tick()
		if err := p.Produce(e.SceneDelta(), e.queue); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return fmt.Errorf("produce frame %d: %w", e.frame+1, err)
		}

		if _, err := e.Frame(); err != nil {
			return err
		}
	}
}

func (e *Engine) recordSize() {
	cols, rows := e.screen.Size()
	e.metrics.setSize(cols, rows)
	e.statSize.Store(strconv.Itoa(cols) + "x" + strconv.Itoa(rows))
}
