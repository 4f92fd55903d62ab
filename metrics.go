package persistent

import (
	"github.com/AndrewDonelson/persistent/internal/clock"
	"github.com/AndrewDonelson/persistent/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// Clock is the time source used to measure operation latency.
type Clock = clock.Clock

// MetricsRecorder receives load, persist, latency, and error events.
type MetricsRecorder = metrics.MetricsRecorder

// NoopMetrics discards all metrics.
type NoopMetrics = metrics.Noop

// PrometheusMetrics records into client_golang collectors.
type PrometheusMetrics = metrics.Prometheus

// NewPrometheusMetrics registers the collectors with reg (the default
// registerer when nil) under namespace.
func NewPrometheusMetrics(namespace string, reg prometheus.Registerer) (*PrometheusMetrics, error) {
	return metrics.NewPrometheus(namespace, reg)
}
