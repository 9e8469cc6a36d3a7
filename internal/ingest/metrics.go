package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FetchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "localdex_ingest_fetch_requests_total",
			Help: "Total number of remote requests by outcome",
		},
		[]string{"outcome"}, // "ok", "error"
	)

	FetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "localdex_ingest_fetch_duration_seconds",
		Help:    "Duration of remote requests",
		Buckets: prometheus.DefBuckets,
	})

	ChunkCommits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "localdex_ingest_chunks_total",
			Help: "Total number of chunks by kind and outcome",
		},
		[]string{"kind", "outcome"}, // "committed", "rolled_back"
	)

	Items = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "localdex_ingest_items_total",
			Help: "Total number of items by kind and outcome",
		},
		[]string{"kind", "outcome"}, // "written", "skipped", "failed", "fetch_failed"
	)
)
