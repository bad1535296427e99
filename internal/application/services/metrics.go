package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// FetchMetrics holds Prometheus metrics for balance fetching
type FetchMetrics struct {
	Attempts  *prometheus.CounterVec
	Exhausted prometheus.Counter
	Duration  prometheus.Histogram
}

// NewFetchMetrics creates fetch metrics registered on reg
func NewFetchMetrics(reg prometheus.Registerer) *FetchMetrics {
	factory := promauto.With(reg)

	return &FetchMetrics{
		Attempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "balance_fetch_attempts_total",
				Help: "Total number of balance fetch attempts by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		Exhausted: factory.NewCounter(prometheus.CounterOpts{
			Name: "balance_fetch_exhausted_total",
			Help: "Total number of balance fetches that failed on every attempt",
		}),
		Duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "balance_fetch_duration_seconds",
			Help:    "Time taken by a balance fetch including retries",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
	}
}

func (m *FetchMetrics) observeAttempt(endpoint string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.Attempts.WithLabelValues(endpoint, outcome).Inc()
}

func (m *FetchMetrics) observeExhausted() {
	if m == nil {
		return
	}
	m.Exhausted.Inc()
}

func (m *FetchMetrics) observeDuration(seconds float64) {
	if m == nil {
		return
	}
	m.Duration.Observe(seconds)
}
