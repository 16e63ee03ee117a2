package server

import (
	"sync"
	"time"

	"github.com/ppiankov/claimroute/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds Prometheus metrics for the routing API
type Metrics struct {
	DecisionsTotal     *prometheus.CounterVec
	MissingFieldsTotal *prometheus.CounterVec
	FraudFlagsTotal    *prometheus.CounterVec
	ProcessDuration    prometheus.Histogram

	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter

	RateLimitedTotal prometheus.Counter
}

// NewMetrics creates and registers the metrics once per process.
//
// Metrics:
//   - claimroute_decisions_total{route} - decisions by route
//   - claimroute_missing_fields_total{field} - mandatory fields found missing
//   - claimroute_fraud_flags_total{keyword} - fraud keywords detected
//   - claimroute_process_duration_seconds - pipeline latency
//   - claimroute_cache_hits_total / claimroute_cache_misses_total
//   - claimroute_rate_limited_total - requests rejected with 429
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			DecisionsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "claimroute_decisions_total",
					Help: "Total number of routing decisions by route",
				},
				[]string{"route"},
			),
			MissingFieldsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "claimroute_missing_fields_total",
					Help: "Total number of missing mandatory fields by field name",
				},
				[]string{"field"},
			),
			FraudFlagsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "claimroute_fraud_flags_total",
					Help: "Total number of fraud keywords detected by keyword",
				},
				[]string{"keyword"},
			),
			ProcessDuration: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "claimroute_process_duration_seconds",
					Help:    "Duration of the routing pipeline in seconds",
					Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
				},
			),
			CacheHitsTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "claimroute_cache_hits_total",
					Help: "Total number of decisions served from cache",
				},
			),
			CacheMissesTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "claimroute_cache_misses_total",
					Help: "Total number of decisions computed on a cache miss",
				},
			),
			RateLimitedTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "claimroute_rate_limited_total",
					Help: "Total number of requests rejected by the rate limiter",
				},
			),
		}
	})
	return globalMetrics
}

// ObserveDecision records one pipeline run
func (m *Metrics) ObserveDecision(decision model.ClaimDecision, elapsed time.Duration) {
	m.DecisionsTotal.WithLabelValues(string(decision.RecommendedRoute)).Inc()
	for _, field := range decision.MissingFields {
		m.MissingFieldsTotal.WithLabelValues(field).Inc()
	}
	for _, keyword := range decision.FraudFlags {
		m.FraudFlagsTotal.WithLabelValues(keyword).Inc()
	}
	m.ProcessDuration.Observe(elapsed.Seconds())
}
