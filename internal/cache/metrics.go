package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Hits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "localdex_payload_cache_hits_total",
		Help: "Total number of payload cache hits",
	})

	Misses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "localdex_payload_cache_misses_total",
		Help: "Total number of payload cache misses",
	})

	Errors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "localdex_payload_cache_errors_total",
			Help: "Total number of payload cache operation errors",
		},
		[]string{"operation"},
	)
)
