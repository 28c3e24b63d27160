package api

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus metrics for the backtest service.
type Metrics struct {
	RequestsTotal  *prometheus.CounterVec
	CacheHitsTotal prometheus.Counter
	CacheMissTotal prometheus.Counter
	RunDuration    prometheus.Histogram
}

// NewMetrics registers and returns the service metrics on its own
// registry, so tests can create servers without collector collisions.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "syntrade_requests_total",
			Help: "Total HTTP requests by route and status",
		}, []string{"route", "status"}),
		CacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "syntrade_cache_hits_total",
			Help: "Backtest results served from the memoization cache",
		}),
		CacheMissTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "syntrade_cache_misses_total",
			Help: "Backtest results computed on demand",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "syntrade_run_duration_seconds",
			Help:    "Wall-clock duration of one pipeline pass",
			Buckets: prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(
		m.RequestsTotal,
		m.CacheHitsTotal,
		m.CacheMissTotal,
		m.RunDuration,
	)

	return m
}
