package engine

import "time"

// Pacer defaults
const (
	DefaultPollInterval = time.Millisecond
	DefaultSpinReserve  = 2 * time.Millisecond
)

// FramePacer releases one frame per target interval using coarse sleeps and a
// final busy-wait. A zero target runs uncapped
type FramePacer struct {
	clock TimeProvider

	target   time.Duration
	deadline time.Time
	last     time.Time

	poll     time.Duration
	spin     time.Duration
	overruns uint64
}

// PacerOption configures a FramePacer
type PacerOption func(*FramePacer)

// WithPollInterval bounds a single sleep call
func WithPollInterval(d time.Duration) PacerOption {
	return func(p *FramePacer) {
		if d > 0 {
			p.poll = d
		}
	}
}

// WithSpinReserve sets how close to the deadline sleeping stops
func WithSpinReserve(d time.Duration) PacerOption {
	return func(p *FramePacer) {
		if d >= 0 {
			p.spin = d
		}
	}
}

// NewFramePacer starts the first interval now; fps <= 0 is uncapped
func NewFramePacer(clock TimeProvider, fps float64, opts ...PacerOption) *FramePacer {
	p := &FramePacer{
		clock: clock,
		poll:  DefaultPollInterval,
		spin:  DefaultSpinReserve,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.Configure(fps)
	return p
}

// Configure sets the target rate and restarts the interval from now
func (p *FramePacer) Configure(fps float64) {
	if fps > 0 {
		p.target = time.Duration(float64(time.Second) / fps)
	} else {
		p.target = 0
	}
	now := p.clock.Now()
	p.last = now
	p.deadline = now.Add(p.target)
}

// WaitForNextFrame blocks until the next frame boundary and returns the frame delta
func (p *FramePacer) WaitForNextFrame() time.Duration {
	if p.target <= 0 {
		now := p.clock.Now()
		dt := now.Sub(p.last)
		p.last = now
		return dt
	}

	deadline := p.deadline

	for {
		now := p.clock.Now()
		remaining := deadline.Sub(now) - p.spin
		if remaining <= 0 {
			break
		}
		p.clock.Sleep(min(p.poll, remaining))
	}

	now := p.clock.Now()
	for now.Before(deadline) {
		now = p.clock.Now()
	}

	dt := now.Sub(deadline.Add(-p.target))

	next := deadline.Add(p.target)
	if now.After(next) {
		// Overran a whole interval, drop the backlog
		next = now.Add(p.target)
		p.overruns++
	}
	p.deadline = next
	p.last = now
	return dt
}

// Target is the frame interval, zero when uncapped
func (p *FramePacer) Target() time.Duration { return p.target }

func (p *FramePacer) Capped() bool { return p.target > 0 }

// Overruns counts resynchronizations after a late frame
func (p *FramePacer) Overruns() uint64 { return p.overruns }
