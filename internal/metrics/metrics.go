package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookworm_searches_total",
		Help: "Completed searches by the tier that answered them",
	}, []string{"source"})

	SearchErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookworm_search_errors_total",
		Help: "Failed searches by error kind",
	}, []string{"kind"})

	RemoteRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bookworm_remote_request_duration_seconds",
		Help:    "Duration of catalog search requests in seconds",
		Buckets: prometheus.DefBuckets,
	})

	CacheEvictionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookworm_cache_evictions_total",
		Help: "Query memo entries evicted as least recently used",
	})

	CacheEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bookworm_cache_entries",
		Help: "Entries currently held in the query memo",
	})
)
