package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the review pipeline.
type Metrics struct {
	// Per-stage execution latencies
	StageLatency *prometheus.HistogramVec

	// Final verdicts by decision and intent category
	Outcome *prometheus.CounterVec

	// Full pipeline latency including audit assembly
	ProcessLatency prometheus.Histogram
}

// New creates a Metrics instance with all pipeline metrics registered.
func New() *Metrics {
	return &Metrics{
		StageLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "treasury_pipeline_stage_duration_seconds",
			Help:    "Duration of individual pipeline stages",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}, []string{"stage"}),

		Outcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "treasury_pipeline_outcomes_total",
			Help: "Total final verdicts by decision and intent category",
		}, []string{"decision", "intent"}),

		ProcessLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "treasury_pipeline_process_duration_seconds",
			Help:    "Duration of full pipeline runs including audit assembly",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

// ObserveStage records one stage's execution time.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m != nil {
		m.StageLatency.WithLabelValues(stage).Observe(d.Seconds())
	}
}

// IncrementOutcome records a final verdict.
func (m *Metrics) IncrementOutcome(decision, intentCategory string) {
	if m != nil {
		m.Outcome.WithLabelValues(decision, intentCategory).Inc()
	}
}

// ObserveProcess records a full run's duration.
func (m *Metrics) ObserveProcess(d time.Duration) {
	if m != nil {
		m.ProcessLatency.Observe(d.Seconds())
	}
}
