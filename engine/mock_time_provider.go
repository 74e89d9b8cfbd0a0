package engine

import (
	"sync"
	"time"
)

// MockTimeProvider is a controllable clock for tests.
// Sleep advances the clock instantly; a non-zero step advances it on every
// Now call so busy-wait loops terminate
type MockTimeProvider struct {
	mu          sync.Mutex
	currentTime time.Time
	step        time.Duration
	slept       time.Duration
	sleeps      int
}

func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{currentTime: startTime}
}

// Now returns the mocked time, then advances it by the step
func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.currentTime
	m.currentTime = m.currentTime.Add(m.step)
	return now
}

func (m *MockTimeProvider) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
	m.slept += d
	m.sleeps++
}

// SetStep sets how far each Now call moves the clock
func (m *MockTimeProvider) SetStep(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.step = d
}

func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// Slept returns the total slept duration and the number of Sleep calls
func (m *MockTimeProvider) Slept() (time.Duration, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slept, m.sleeps
}
