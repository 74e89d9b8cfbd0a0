package engine

import (
	"sync"
	"testing"
	"time"
)

func TestMonotonicTimeProvider(t *testing.T) {
	provider := NewMonotonicTimeProvider()

	t1 := provider.Now()
	provider.Sleep(10 * time.Millisecond)
	t2 := provider.Now()

	if diff := t2.Sub(t1); diff < 10*time.Millisecond {
		t.Errorf("Expected at least 10ms difference, got %v", diff)
	}
}

func TestMockTimeProvider(t *testing.T) {
	startTime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(startTime)

	if now := mock.Now(); !now.Equal(startTime) {
		t.Errorf("Expected initial time to be %v, got %v", startTime, now)
	}

	newTime := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	mock.SetTime(newTime)
	mock.Advance(time.Hour)
	mock.Sleep(30 * time.Minute)
	mock.Sleep(-time.Minute)

	expected := newTime.Add(90 * time.Minute)
	if now := mock.Now(); !now.Equal(expected) {
		t.Errorf("Expected %v after Advance and Sleep, got %v", expected, now)
	}

	slept, calls := mock.Slept()
	if slept != 30*time.Minute || calls != 1 {
		t.Errorf("Expected one 30m sleep, got %v over %d calls", slept, calls)
	}
}

func TestMockTimeProviderStep(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(start)
	mock.SetStep(time.Millisecond)

	a := mock.Now()
	b := mock.Now()
	if b.Sub(a) != time.Millisecond {
		t.Errorf("Expected each Now to advance 1ms, got %v", b.Sub(a))
	}
}

func TestMockTimeProviderConcurrency(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = mock.Now()
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				mock.Advance(time.Millisecond)
			}
		}()
	}
	wg.Wait()

	want := time.Date(2025, 1, 1, 0, 0, 1, 0, time.UTC)
	if now := mock.Now(); !now.Equal(want) {
		t.Errorf("Expected %v after 1000 advances, got %v", want, now)
	}
}

func TestPausableClock(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	pc := NewPausableClock(mock)

	mock.Advance(100 * time.Millisecond)
	pc.Pause()
	mock.Advance(time.Second)

	if got := pc.Elapsed(); got != 100*time.Millisecond {
		t.Errorf("Expected frozen 100ms while paused, got %v", got)
	}
	if got := pc.TotalPaused(); got != time.Second {
		t.Errorf("Expected 1s paused so far, got %v", got)
	}

	pc.Resume()
	mock.Advance(50 * time.Millisecond)
	if got := pc.Elapsed(); got != 150*time.Millisecond {
		t.Errorf("Expected 150ms scene time, got %v", got)
	}
	if pc.IsPaused() {
		t.Error("Expected resumed clock")
	}
}
