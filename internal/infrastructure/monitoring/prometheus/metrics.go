// Package prometheus exposes the service's Prometheus metrics.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "afyabot"

var httpDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// Metrics holds every metric the service records.
type Metrics struct {
	registry *prometheus.Registry

	MessagesTotal    *prometheus.CounterVec
	EmergenciesTotal *prometheus.CounterVec
	TriageDuration   prometheus.Histogram

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	HospitalLookupsTotal *prometheus.CounterVec
	FeedbackRatings      prometheus.Histogram
}

// NewMetrics builds and registers all metrics on a fresh registry, alongside
// the standard Go and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		MessagesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_total",
			Help:      "Messages processed, by triage outcome.",
		}, []string{"outcome"}),

		EmergenciesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emergencies_total",
			Help:      "Emergency detections, by representative severity.",
		}, []string{"severity"}),

		TriageDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "triage_duration_seconds",
			Help:      "Wall time of one triage pipeline pass.",
			Buckets:   httpDurationBuckets,
		}),

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests, by method, route, and status code.",
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration, by method and route.",
			Buckets:   httpDurationBuckets,
		}, []string{"method", "path"}),

		HospitalLookupsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hospital_lookups_total",
			Help:      "Overpass hospital lookups, by result status.",
		}, []string{"status"}),

		FeedbackRatings: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "feedback_ratings",
			Help:      "Distribution of first-aid feedback ratings.",
			Buckets:   []float64{1, 2, 3, 4, 5},
		}),
	}
}

// ObserveTriage records one pipeline pass.
func (m *Metrics) ObserveTriage(outcome string, severity string, elapsed time.Duration) {
	m.MessagesTotal.WithLabelValues(outcome).Inc()
	if severity != "" {
		m.EmergenciesTotal.WithLabelValues(severity).Inc()
	}
	m.TriageDuration.Observe(elapsed.Seconds())
}

// Handler serves the metrics endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
