package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "staffdex",
			Name:      "search_duration_seconds",
			Help:      "End-to-end search duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	SearchCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "staffdex",
			Name:      "search_cache_total",
			Help:      "Search response cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss" / "bypass"
	)

	SearchStrategyFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "staffdex",
			Name:      "search_strategy_failures_total",
			Help:      "Strategy executions folded into zero candidates",
		},
		[]string{"strategy"},
	)

	SearchCacheInvalidations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "staffdex",
			Name:      "search_cache_invalidations_total",
			Help:      "Tenant-scoped cache invalidations triggered by employee mutations",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchCacheTotal)
	prometheus.MustRegister(SearchStrategyFailures)
	prometheus.MustRegister(SearchCacheInvalidations)
	searchMetricsRegistered = true
}
