package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "leasedesk"

// Registry holds the client metrics on a private Prometheus registry.
// A nil *Registry is valid and records nothing.
type Registry struct {
	registry *prometheus.Registry

	RequestsTotal      *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	SessionTransitions *prometheus.CounterVec
	Notifications      *prometheus.CounterVec
}

// NewRegistry creates the client metrics and registers them.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Backend calls by resource and outcome.",
		}, []string{"resource", "outcome"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Backend call latency by resource.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"resource"}),
		SessionTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_transitions_total",
			Help:      "Session state changes by target state and reason.",
		}, []string{"to", "reason"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notifications shown by severity.",
		}, []string{"severity"}),
	}
	r.registry.MustRegister(r.RequestsTotal, r.RequestDuration, r.SessionTransitions, r.Notifications)
	return r
}

// Register adds an extra collector, such as a storage or session collector.
func (r *Registry) Register(c prometheus.Collector) error {
	if r == nil {
		return nil
	}
	return r.registry.Register(c)
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// ObserveRequest records one backend call.
func (r *Registry) ObserveRequest(resource, outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.RequestsTotal.WithLabelValues(resource, outcome).Inc()
	r.RequestDuration.WithLabelValues(resource).Observe(d.Seconds())
}

// RecordTransition records a session state change.
func (r *Registry) RecordTransition(to, reason string) {
	if r == nil {
		return
	}
	r.SessionTransitions.WithLabelValues(to, reason).Inc()
}

// RecordNotification records a shown notification.
func (r *Registry) RecordNotification(severity string) {
	if r == nil {
		return
	}
	r.Notifications.WithLabelValues(severity).Inc()
}

// WriteTextfile writes every metric to path in the text exposition format,
// for pickup by the node exporter textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
