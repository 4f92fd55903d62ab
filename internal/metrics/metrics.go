// Package metrics provides the MetricsRecorder interface, a noop
// implementation, and a Prometheus-backed recorder.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsRecorder is the interface for recording operational metrics.
// name is the persistent object's display name; op is one of "load",
// "reload", "persist", "revert", "unload".
type MetricsRecorder interface {
	RecordLoad(name, source string)
	RecordPersist(name string, bytes int)
	RecordLatency(name, op string, d time.Duration)
	RecordError(name, op string)
}

// Load sources reported through RecordLoad.
const (
	SourceStorage = "storage"
	SourceDefault = "default"
)

// Noop is a MetricsRecorder that discards all data.
type Noop struct{}

func (Noop) RecordLoad(name, source string)                 {}
func (Noop) RecordPersist(name string, bytes int)           {}
func (Noop) RecordLatency(name, op string, d time.Duration) {}
func (Noop) RecordError(name, op string)                    {}

// Prometheus records metrics into client_golang collectors.
type Prometheus struct {
	loads        *prometheus.CounterVec
	persists     *prometheus.CounterVec
	persistBytes *prometheus.GaugeVec
	latency      *prometheus.HistogramVec
	errors       *prometheus.CounterVec
}

// NewPrometheus creates the collectors under namespace and registers them
// with reg. A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheus(namespace string, reg prometheus.Registerer) (*Prometheus, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	p := &Prometheus{
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_total",
			Help:      "Successful loads by object and source (storage or default)",
		}, []string{"name", "source"}),
		persists: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persists_total",
			Help:      "Successful writes to storage by object",
		}, []string{"name"}),
		persistBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "persisted_bytes",
			Help:      "Size of the last successful write by object",
		}, []string{"name"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_latency_milliseconds",
			Help:      "Operation latency in milliseconds by object and operation",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2.0, 16),
		}, []string{"name", "op"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Failed operations by object and operation",
		}, []string{"name", "op"}),
	}
	for _, c := range []prometheus.Collector{p.loads, p.persists, p.persistBytes, p.latency, p.errors} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Prometheus) RecordLoad(name, source string) {
	p.loads.WithLabelValues(name, source).Inc()
}

func (p *Prometheus) RecordPersist(name string, bytes int) {
	p.persists.WithLabelValues(name).Inc()
	p.persistBytes.WithLabelValues(name).Set(float64(bytes))
}

func (p *Prometheus) RecordLatency(name, op string, d time.Duration) {
	p.latency.WithLabelValues(name, op).Observe(float64(d) / float64(time.Millisecond))
}

func (p *Prometheus) RecordError(name, op string) {
	p.errors.WithLabelValues(name, op).Inc()
}
