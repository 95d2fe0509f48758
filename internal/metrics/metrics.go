// Package metrics exposes the service's Prometheus collectors. Everything
// registers on the default registry at init and is served from /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReportsIngested = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "vurdhaan",
			Subsystem: "reports",
			Name:      "ingested_total",
			Help:      "Reports accepted and stored, one per generation.",
		},
	)

	PagesServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vurdhaan",
			Subsystem: "reports",
			Name:      "pages_served_total",
			Help:      "Error pages served, by category.",
		},
		[]string{"category"},
	)

	StaleReads = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "vurdhaan",
			Subsystem: "reports",
			Name:      "stale_reads_total",
			Help:      "Reads rejected because they referenced an invalidated generation.",
		},
	)

	CorrectionsFlushed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "vurdhaan",
			Subsystem: "corrections",
			Name:      "flushed_total",
			Help:      "Corrections handed to the persistence collaborator.",
		},
	)

	FlushFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "vurdhaan",
			Subsystem: "corrections",
			Name:      "flush_failures_total",
			Help:      "Correction flushes that failed and left the ledger dirty.",
		},
	)

	PayloadBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vurdhaan",
			Subsystem: "codec",
			Name:      "payload_bytes",
			Help:      "Ingested payload sizes, by transport form.",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 8),
		},
		[]string{"form"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vurdhaan",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Request latency by route, method and status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method", "status"},
	)
)
