package engine

import "time"

// TimeProvider is the clock the pacer reads and sleeps on
type TimeProvider interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// MonotonicTimeProvider reads the real clock; time.Now carries a monotonic reading
type MonotonicTimeProvider struct{}

func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

func (p *MonotonicTimeProvider) Sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
