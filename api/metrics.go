package api

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the prometheus collectors for the HTTP surface and the registry
// they are exposed from
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	inFlight prometheus.Gauge
	enquiry  *prometheus.CounterVec
}

// NewMetrics creates the collectors on a fresh registry, so tests can build as many
// as they like
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: "tourism", Name: "http_requests_total", Help: "HTTP requests."},
			[]string{"route", "method", "status"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "tourism", Name: "http_request_duration_seconds",
				Help:    "HTTP request duration seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{Namespace: "tourism", Name: "http_requests_in_flight", Help: "Requests being served."},
		),
		enquiry: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: "tourism", Name: "tour_requests_total", Help: "Tour request submissions by outcome."},
			[]string{"outcome"}, // outcome: accepted|invalid|limited|failed
		),
	}
	m.registry.MustRegister(m.requests, m.latency, m.inFlight, m.enquiry)
	return m
}

// Handler serves the registry in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTP records one finished request
func (m *Metrics) ObserveHTTP(route, method string, status int, dur time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route, method).Observe(dur.Seconds())
}

// ObserveEnquiry counts a tour request submission outcome
func (m *Metrics) ObserveEnquiry(outcome string) {
	m.enquiry.WithLabelValues(outcome).Inc()
}

var (
	objectIDPattern   = regexp.MustCompile(`/[0-9a-fA-F]{24}(/|$)`)
	uuidPattern       = regexp.MustCompile(`/[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}(/|$)`)
	longNumberPattern = regexp.MustCompile(`/\d{10,}(/|$)`)
)

// normalizeRoutePath replaces dynamic segments with placeholders for requests that
// did not match a named route
//   - /api/v1/admin/hotels/507f1f77bcf86cd799439011 -> /api/v1/admin/hotels/{id}
func normalizeRoutePath(path string) string {
	path = objectIDPattern.ReplaceAllString(path, "/{id}$1")
	path = uuidPattern.ReplaceAllString(path, "/{id}$1")
	path = longNumberPattern.ReplaceAllString(path, "/{id}$1")

	path = strings.ReplaceAll(path, "//", "/")
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	return path
}
