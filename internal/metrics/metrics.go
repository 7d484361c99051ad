// Package metrics exposes Prometheus instrumentation for optimization runs and the HTTP API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OptimizeRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "party_optimize_runs_total",
			Help: "Total number of optimization runs by outcome",
		},
		[]string{"outcome"}, // "ok", "invalid_config", "empty_catalog", "canceled"
	)

	OptimizeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "party_optimize_duration_seconds",
			Help:    "Wall time of a full optimization run",
			Buckets: prometheus.DefBuckets,
		},
	)

	CombinationsEvaluated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "party_guest_combinations_evaluated_total",
			Help: "Guest combinations passed to the menu selector",
		},
	)

	RecommendationsProduced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "party_recommendations_produced_total",
			Help: "Viable recommendations produced across all runs",
		},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "party_api_requests_total",
			Help: "HTTP API requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "party_api_request_duration_seconds",
			Help:    "HTTP API request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordOptimize records the outcome of one optimization run
func RecordOptimize(outcome string, combinations, recommendations int, duration time.Duration) {
	OptimizeRuns.WithLabelValues(outcome).Inc()
	OptimizeDuration.Observe(duration.Seconds())
	CombinationsEvaluated.Add(float64(combinations))
	RecommendationsProduced.Add(float64(recommendations))
}

// RecordAPIRequest records one HTTP request
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
