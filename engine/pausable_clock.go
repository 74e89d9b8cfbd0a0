package engine

import (
	"sync"
	"time"
)

// PausableClock derives scene time from a TimeProvider; scene time stops while paused
type PausableClock struct {
	mu sync.Mutex

	clock     TimeProvider
	start     time.Time
	paused    bool
	pausedAt  time.Time
	pausedSum time.Duration
}

func NewPausableClock(clock TimeProvider) *PausableClock {
	return &PausableClock{clock: clock, start: clock.Now()}
}

// Elapsed returns scene time since creation, excluding pauses
func (pc *PausableClock) Elapsed() time.Duration {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	now := pc.clock.Now()
	if pc.paused {
		now = pc.pausedAt
	}
	return now.Sub(pc.start) - pc.pausedSum
}

func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.paused {
		pc.paused = true
		pc.pausedAt = pc.clock.Now()
	}
}

func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused {
		pc.pausedSum += pc.clock.Now().Sub(pc.pausedAt)
		pc.paused = false
	}
}

func (pc *PausableClock) IsPaused() bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.paused
}

// TotalPaused includes the pause in progress
func (pc *PausableClock) TotalPaused() time.Duration {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	total := pc.pausedSum
	if pc.paused {
		total += pc.clock.Now().Sub(pc.pausedAt)
	}
	return total
}
