package status

import (
	"math"
	"sync/atomic"

	"github.com/mattn/go-runewidth"
)

// MaxStringWidth caps stored strings to what fits in a HUD column
const MaxStringWidth = 24

// AtomicFloat is a float64 gauge; the zero value reads 0
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Set(v float64) { f.bits.Store(math.Float64bits(v)) }

func (f *AtomicFloat) Get() float64 { return math.Float64frombits(f.bits.Load()) }

// Smooth folds sample into an exponential moving average and returns it.
// The first sample on a zero gauge is taken as is
func (f *AtomicFloat) Smooth(sample, factor float64) float64 {
	for {
		old := f.bits.Load()
		cur := math.Float64frombits(old)
		next := sample
		if old != 0 {
			next = cur + (sample-cur)*factor
		}
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}

// AtomicString holds a short display label; the zero value reads ""
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store keeps at most MaxStringWidth cells, never splitting a rune
func (s *AtomicString) Store(v string) {
	v = runewidth.Truncate(v, MaxStringWidth, "")
	s.ptr.Store(&v)
}

func (s *AtomicString) Load() string {
	p := s.ptr.Load()
	if p == nil {
		return ""
	}
	return *p
}
