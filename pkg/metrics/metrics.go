package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetrics records latency and outcome for HTTP requests.
type RequestMetrics struct {
	duration *prometheus.HistogramVec
	total    *prometheus.CounterVec
}

// NewRequestMetrics registers the HTTP request metrics on the provided registerer.
func NewRequestMetrics(reg prometheus.Registerer) *RequestMetrics {
	if reg == nil {
		return &RequestMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})
	total := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Completed HTTP requests by status code.",
	}, []string{"route", "method", "status"})
	reg.MustRegister(duration, total)
	return &RequestMetrics{
		duration: duration,
		total:    total,
	}
}

// ObserveRequest records a completed request.
func (r *RequestMetrics) ObserveRequest(route, method, status string, duration time.Duration) {
	if r == nil || r.duration == nil {
		return
	}
	route = normalizeLabel(route)
	method = normalizeLabel(method)
	r.duration.WithLabelValues(route, method).Observe(duration.Seconds())
	r.total.WithLabelValues(route, method, normalizeLabel(status)).Inc()
}

// GeocodeMetrics records metadata for outbound geocoding calls.
type GeocodeMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewGeocodeMetrics registers the geocoder metrics on the provided registerer.
func NewGeocodeMetrics(reg prometheus.Registerer) *GeocodeMetrics {
	if reg == nil {
		return &GeocodeMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "geocode_duration_seconds",
		Help:    "Duration of geocoding requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geocode_success",
		Help: "Successful geocoding lookups.",
	}, []string{"provider"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "geocode_failure",
		Help: "Failed geocoding lookups.",
	}, []string{"provider"})
	reg.MustRegister(duration, success, failure)
	return &GeocodeMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for the named provider.
func (g *GeocodeMetrics) ObserveDuration(provider string, duration time.Duration) {
	if g == nil || g.duration == nil {
		return
	}
	g.duration.WithLabelValues(normalizeLabel(provider)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named provider.
func (g *GeocodeMetrics) IncSuccess(provider string) {
	if g == nil || g.success == nil {
		return
	}
	g.success.WithLabelValues(normalizeLabel(provider)).Inc()
}

// IncFailure increments the failure counter for the named provider.
func (g *GeocodeMetrics) IncFailure(provider string) {
	if g == nil || g.failure == nil {
		return
	}
	g.failure.WithLabelValues(normalizeLabel(provider)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
