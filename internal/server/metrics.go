package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paperforge_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "paperforge_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	suggestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "paperforge_suggest_duration_seconds",
			Help:    "Region suggestion duration in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)

	suggestRegions = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "paperforge_suggest_regions",
			Help:    "Number of regions suggested per page",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 40},
		},
	)

	candidateUpserts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "paperforge_candidate_upserts_total",
			Help: "Total number of candidate upserts",
		},
	)

	papersGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "paperforge_papers_generated_total",
			Help: "Total number of practice papers generated",
		},
	)

	websocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "paperforge_websocket_connections",
			Help: "Active websocket connections",
		},
	)
)
