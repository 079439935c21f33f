package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits counts cache lookups answered by an unexpired entry, by key namespace.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uloggd_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"namespace"},
	)

	// CacheMisses counts cache lookups that found no unexpired entry, by key namespace.
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uloggd_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"namespace"},
	)

	// CacheStoreErrors counts absorbed backend failures, by operation.
	CacheStoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uloggd_cache_store_errors_total",
			Help: "Total number of cache backend errors degraded to misses or failed writes",
		},
		[]string{"operation"},
	)

	// UpstreamRequests counts catalog upstream calls by resource and outcome (success, failure, rejected).
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uloggd_upstream_requests_total",
			Help: "Total number of catalog upstream requests",
		},
		[]string{"resource", "outcome"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "uloggd_upstream_request_duration_seconds",
			Help:    "Duration of catalog upstream requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource"},
	)

	// CircuitBreakerState is 0 (closed), 1 (half-open) or 2 (open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "uloggd_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// BatchChunks counts upstream chunks issued by the batch resolver, by outcome.
	BatchChunks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uloggd_batch_chunks_total",
			Help: "Total number of upstream chunks issued by the batch resolver",
		},
		[]string{"outcome"},
	)

	// BackfillTasks counts background cache backfills, by outcome (stored, failed, dropped).
	BackfillTasks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uloggd_backfill_tasks_total",
			Help: "Total number of background cache backfill tasks",
		},
		[]string{"outcome"},
	)
)
