// Package metrics provides Prometheus metrics for the gateway.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "object_gateway_operations_total",
			Help: "Total number of gateway operations",
		},
		[]string{"backend", "operation", "status"},
	)

	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "object_gateway_operation_duration_seconds",
			Help:    "Gateway operation duration in seconds, retries included",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)

	retriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "object_gateway_retries_total",
			Help: "Total number of retried backend calls",
		},
		[]string{"operation"},
	)

	connectionsCached = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "object_gateway_connections_cached",
			Help: "Number of cached tenant connections",
		},
		[]string{"backend"},
	)

	batchFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "object_gateway_batch_delete_failures_total",
			Help: "Objects that failed inside batch deletions",
		},
		[]string{"backend"},
	)
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordOperation records a gateway operation.
func RecordOperation(backend, operation string, duration time.Duration, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	operationsTotal.WithLabelValues(backend, operation, status).Inc()
	operationDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
}

// RecordRetry counts a retry of the named operation.
func RecordRetry(operation string) {
	retriesTotal.WithLabelValues(operation).Inc()
}

// SetConnections sets the number of cached connections for a backend.
func SetConnections(backend string, n int) {
	connectionsCached.WithLabelValues(backend).Set(float64(n))
}

// RecordBatchFailures adds n failed objects from a batch deletion.
func RecordBatchFailures(backend string, n int) {
	if n > 0 {
		batchFailuresTotal.WithLabelValues(backend).Add(float64(n))
	}
}
