package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "app_cadastro_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_cadastro_active_connections",
			Help: "Number of active connections",
		},
	)

	// ActiveDrafts tracks mounted registration forms
	ActiveDrafts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_cadastro_active_drafts",
			Help: "Number of registration drafts held in memory",
		},
	)

	// FieldEvents tracks input events applied to drafts
	FieldEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_cadastro_field_events_total",
			Help: "Number of input events applied to registration drafts",
		},
		[]string{"field", "status"},
	)

	// ValidationFailures tracks field validation failures
	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_cadastro_validation_failures_total",
			Help: "Number of field validation failures",
		},
		[]string{"field"},
	)

	// Submissions tracks submission attempts by outcome
	Submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_cadastro_submissions_total",
			Help: "Number of registration submissions",
		},
		[]string{"status"},
	)

	// DatabaseOperations tracks database operations
	DatabaseOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_cadastro_database_operations_total",
			Help: "Number of database operations",
		},
		[]string{"operation", "status"},
	)
)
