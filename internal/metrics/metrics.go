package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "council_http_requests_total",
			Help: "Total HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "council_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	StatementsOpened = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "council_statements_opened_total",
			Help: "Land-rent statements opened",
		},
	)

	InvoicesGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "council_waste_invoices_generated_total",
			Help: "Waste invoices created by the generator",
		},
	)

	PaymentsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "council_payments_recorded_total",
			Help: "Payments recorded by subsystem (land_rent, waste)",
		},
		[]string{"subsystem"},
	)

	AmountAllocated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "council_waste_amount_allocated_total",
			Help: "Waste payment amount allocated to invoices",
		},
	)
)
