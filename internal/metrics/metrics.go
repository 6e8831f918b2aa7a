// Package metrics provides Prometheus metrics for nearstop.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Registry is the Prometheus registry for this metrics instance
	Registry *prometheus.Registry

	// Upstream (Mapbox, MBTA, weather, holidays) call metrics
	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec

	// HTTP metrics for the local server
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	LookupsTotal *prometheus.CounterVec
}

// New creates and registers all application metrics with a new registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	upstreamRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nearstop_upstream_requests_total",
			Help: "Total number of requests made to upstream providers",
		},
		[]string{"provider", "outcome"},
	)

	upstreamRequestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nearstop_upstream_request_duration_seconds",
			Help:    "Upstream provider latency distribution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	httpRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nearstop_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nearstop_http_request_duration_seconds",
			Help:    "HTTP request latency distribution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	lookupsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nearstop_lookups_total",
			Help: "Nearest-stop lookups by result",
		},
		[]string{"result"},
	)

	registry.MustRegister(
		upstreamRequestsTotal,
		upstreamRequestDuration,
		httpRequestsTotal,
		httpRequestDuration,
		lookupsTotal,
	)

	return &Metrics{
		Registry:                registry,
		UpstreamRequestsTotal:   upstreamRequestsTotal,
		UpstreamRequestDuration: upstreamRequestDuration,
		HTTPRequestsTotal:       httpRequestsTotal,
		HTTPRequestDuration:     httpRequestDuration,
		LookupsTotal:            lookupsTotal,
	}
}

// ObserveUpstream records one upstream call. Safe on a nil receiver.
func (m *Metrics) ObserveUpstream(provider, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamRequestsTotal.WithLabelValues(provider, outcome).Inc()
	m.UpstreamRequestDuration.WithLabelValues(provider).Observe(d.Seconds())
}

// ObserveLookup records the outcome of a nearest-stop lookup. Safe on a nil receiver.
func (m *Metrics) ObserveLookup(result string) {
	if m == nil {
		return
	}
	m.LookupsTotal.WithLabelValues(result).Inc()
}

// ObserveHTTP records one served HTTP request. Safe on a nil receiver.
func (m *Metrics) ObserveHTTP(method, path, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}
