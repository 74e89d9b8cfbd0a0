package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the frame loop's prometheus collectors
type Metrics struct {
	Frames        prometheus.Counter
	FullRedraws   prometheus.Counter
	PresentErrors prometheus.Counter
	Overruns      prometheus.Counter
	ChangedCells  prometheus.Histogram
	DrawCalls     prometheus.Histogram
	FrameSeconds  prometheus.Histogram
	Cols          prometheus.Gauge
	Rows          prometheus.Gauge
}

// NewMetrics registers on reg; a nil reg leaves the collectors unregistered
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Frames: f.NewCounter(prometheus.CounterOpts{
			Namespace: "termdeck",
			Name:      "frames_total",
			Help:      "Frames composited and presented.",
		}),
		FullRedraws: f.NewCounter(prometheus.CounterOpts{
			Namespace: "termdeck",
			Name:      "full_redraws_total",
			Help:      "Frames that re-emitted every cell after a resize or invalidation.",
		}),
		PresentErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: "termdeck",
			Name:      "present_errors_total",
			Help:      "Sink failures while presenting a frame.",
		}),
		Overruns: f.NewCounter(prometheus.CounterOpts{
			Namespace: "termdeck",
			Name:      "pacer_overruns_total",
			Help:      "Frames that missed a whole interval and resynchronized the pacer.",
		}),
		ChangedCells: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "termdeck",
			Name:      "changed_cells",
			Help:      "Cells emitted to the sink per frame.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		DrawCalls: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "termdeck",
			Name:      "draw_calls",
			Help:      "Draw calls composited per frame.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		FrameSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "termdeck",
			Name:      "frame_seconds",
			Help:      "Time spent compositing, diffing and presenting a frame.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 10),
		}),
		Cols: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "termdeck",
			Name:      "screen_cols",
			Help:      "Current screen width in cells.",
		}),
		Rows: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "termdeck",
			Name:      "screen_rows",
			Help:      "Current screen height in cells.",
		}),
	}
}

func (m *Metrics) observe(s FrameStats) {
	m.Frames.Inc()
	if s.Full {
		m.FullRedraws.Inc()
	}
	m.ChangedCells.Observe(float64(s.Changes.Cells))
	m.DrawCalls.Observe(float64(s.Calls))
	m.FrameSeconds.Observe(s.Duration.Seconds())
}

func (m *Metrics) setSize(cols, rows int) {
	m.Cols.Set(float64(cols))
	m.Rows.Set(float64(rows))
}
