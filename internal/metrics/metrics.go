package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const (
	namespace = "course_hub"
)

// Metrics holds all application metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Document store metrics
	StoreQueryDuration *prometheus.HistogramVec
	StoreQueryErrors   *prometheus.CounterVec
	StoreBusyTotal     prometheus.Counter

	// Business metrics
	EntitiesCreatedTotal *prometheus.CounterVec
	CommentsCreatedTotal *prometheus.CounterVec
	CascadeDeletesTotal  *prometheus.CounterVec
	OrphansSweptTotal    prometheus.Counter

	// Logger for error reporting
	logger *zap.Logger
}

// New creates and registers all metrics with the default registry
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, nil)
}

// NewWithLogger creates and registers all metrics with the default registry and a logger
func NewWithLogger(logger *zap.Logger) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, logger)
}

// NewWithRegistry creates and registers all metrics with a custom registry
func NewWithRegistry(registerer prometheus.Registerer, logger *zap.Logger) *Metrics {
	factory := promauto.With(registerer)

	// Use a no-op logger if none provided
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Metrics{
		// HTTP metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "endpoint"},
		),

		// Document store metrics
		StoreQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "store_query_duration_seconds",
				Help:      "Document store operation duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"operation", "collection"},
		),
		StoreQueryErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_query_errors_total",
				Help:      "Total number of document store operation errors",
			},
			[]string{"operation", "collection"},
		),
		StoreBusyTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_busy_total",
				Help:      "Total number of operations rejected because a collection lock wait timed out",
			},
		),

		// Business metrics
		EntitiesCreatedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "entities_created_total",
				Help:      "Total number of entity creation events",
			},
			[]string{"domain"},
		),
		CommentsCreatedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "comments_created_total",
				Help:      "Total number of comment creation events",
			},
			[]string{"domain"},
		),
		CascadeDeletesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cascade_deletes_total",
				Help:      "Total number of entity deletes cascaded to comment threads",
			},
			[]string{"domain"},
		),
		OrphansSweptTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "orphans_swept_total",
				Help:      "Total number of orphaned comments removed by the sweep job",
			},
		),

		logger: logger,
	}
}

// safeExecute wraps metric operations with panic recovery
func (m *Metrics) safeExecute(operation string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if m.logger != nil {
				m.logger.Error("Panic in metrics operation",
					zap.String("operation", operation),
					zap.Any("panic", r),
				)
			}
		}
	}()
	fn()
}
