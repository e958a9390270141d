// Package scoremetrics records score service operations in Prometheus.
package scoremetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ScoreMetrics is the set of measurements the score service emits.
type ScoreMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, d time.Duration)
	RecordAggregationFailure(ctx context.Context, teamID string)
	RecordSubmission(ctx context.Context, created bool)
}

type prometheusMetrics struct {
	attempts           *prometheus.CounterVec
	successes          *prometheus.CounterVec
	failures           *prometheus.CounterVec
	duration           *prometheus.HistogramVec
	aggregationFailure prometheus.Counter
	submissions        *prometheus.CounterVec
}

// NewPrometheus registers the score collectors on reg.
func NewPrometheus(reg prometheus.Registerer) (ScoreMetrics, error) {
	m := &prometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hackathon",
			Subsystem: "score",
			Name:      "operation_attempts_total",
			Help:      "Score service operations started.",
		}, []string{"operation", "service"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hackathon",
			Subsystem: "score",
			Name:      "operation_success_total",
			Help:      "Score service operations that completed without an infrastructure error.",
		}, []string{"operation", "service"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hackathon",
			Subsystem: "score",
			Name:      "operation_failures_total",
			Help:      "Score service operations that returned an error.",
		}, []string{"operation", "service"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hackathon",
			Subsystem: "score",
			Name:      "operation_duration_seconds",
			Help:      "Score service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "service"}),
		aggregationFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hackathon",
			Subsystem: "score",
			Name:      "aggregation_failures_total",
			Help:      "Team total recomputations that failed and left totals stale.",
		}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hackathon",
			Subsystem: "score",
			Name:      "submissions_total",
			Help:      "Accepted score submissions by outcome.",
		}, []string{"outcome"}),
	}

	for _, c := range []prometheus.Collector{m.attempts, m.successes, m.failures, m.duration, m.aggregationFailure, m.submissions} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *prometheusMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.attempts.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.successes.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.failures.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationDuration(_ context.Context, operation, service string, d time.Duration) {
	m.duration.WithLabelValues(operation, service).Observe(d.Seconds())
}

func (m *prometheusMetrics) RecordAggregationFailure(_ context.Context, _ string) {
	m.aggregationFailure.Inc()
}

func (m *prometheusMetrics) RecordSubmission(_ context.Context, created bool) {
	outcome := "updated"
	if created {
		outcome = "created"
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

// RegisterScoreCountGauge exposes the number of stored score rows, read at scrape time.
func RegisterScoreCountGauge(reg prometheus.Registerer, count func() (int, error)) error {
	return reg.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "hackathon",
		Subsystem: "score",
		Name:      "records",
		Help:      "Stored score records.",
	}, func() float64 {
		n, err := count()
		if err != nil {
			return 0
		}
		return float64(n)
	}))
}
