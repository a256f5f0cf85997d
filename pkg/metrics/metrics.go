// Package metrics declares the Prometheus collectors for a ccgparse
// deployment: parse latency, agenda pop counts, and per-sentence failure
// reasons: a struct of promauto-registered collectors built once behind
// sync.Once, with Record* methods hiding the label plumbing from callers.
// Registration happens here; nothing in this module starts an HTTP
// server to serve /metrics, that wiring belongs to the embedding
// application.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	global     *Metrics
	globalOnce sync.Once
)

// Metrics holds the collectors a parse driver and batch runner report to.
type Metrics struct {
	ParseDuration   prometheus.Histogram
	ParsePopCount   prometheus.Histogram
	ParseChartSize  prometheus.Histogram
	ParsesTotal     *prometheus.CounterVec // label "outcome": ok, no_parse, too_long, budget_exceeded, invalid
	ActiveWorkers   prometheus.Gauge
	BatchQueueDepth prometheus.Gauge
}

// New returns the process-wide Metrics, registering its collectors with
// prometheus.DefaultRegisterer exactly once.
func New() *Metrics {
	globalOnce.Do(func() {
		global = &Metrics{
			ParseDuration: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "ccgparse_parse_duration_seconds",
				Help:    "Wall-clock duration of a single sentence parse.",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms .. ~4s
			}),
			ParsePopCount: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "ccgparse_parse_pop_count",
				Help:    "Number of agenda pops performed before a parse finished or gave up.",
				Buckets: prometheus.ExponentialBuckets(8, 2, 16),
			}),
			ParseChartSize: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "ccgparse_parse_chart_edges",
				Help:    "Number of edges allocated during a parse.",
				Buckets: prometheus.ExponentialBuckets(4, 2, 14),
			}),
			ParsesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "ccgparse_parses_total",
				Help: "Total parses by outcome.",
			}, []string{"outcome"}),
			ActiveWorkers: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "ccgparse_batch_active_workers",
				Help: "Number of batch worker goroutines currently parsing a sentence.",
			}),
			BatchQueueDepth: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "ccgparse_batch_queue_depth",
				Help: "Number of sentences submitted to a batch run that have not yet completed.",
			}),
		}
	})
	return global
}

const (
	OutcomeOK             = "ok"
	OutcomeNoParse        = "no_parse"
	OutcomeTooLong        = "too_long"
	OutcomeBudgetExceeded = "budget_exceeded"
	OutcomeInvalid        = "invalid"
)

// RecordParse reports one completed parse attempt, successful or not.
func (m *Metrics) RecordParse(outcome string, durationSeconds float64, popCount, chartEdges int) {
	m.ParsesTotal.WithLabelValues(outcome).Inc()
	m.ParseDuration.Observe(durationSeconds)
	if outcome == OutcomeOK || outcome == OutcomeNoParse || outcome == OutcomeBudgetExceeded {
		m.ParsePopCount.Observe(float64(popCount))
		m.ParseChartSize.Observe(float64(chartEdges))
	}
}
