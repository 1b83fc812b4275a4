package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// status: started, completed, failed
	CatalogExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_exports_total",
			Help: "Catalog export jobs by outcome",
		},
		[]string{"format", "status"},
	)

	CatalogExportedRows = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_exported_rows_total",
			Help: "Books written to catalog export files",
		},
	)

	CatalogExportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_export_duration_seconds",
			Help:    "Time spent writing a catalog export",
			Buckets: []float64{0.5, 1, 5, 15, 30, 60, 300, 900, 1800},
		},
	)

	AuthorsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_authors_created_total",
			Help: "Authors created implicitly by book writes",
		},
	)
)
