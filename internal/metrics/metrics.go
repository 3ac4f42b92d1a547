// Package metrics exposes Prometheus counters for clinic activity and the
// HTTP API.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hackgods/clinic-records/internal/events"
)

type Metrics struct {
	gatherer prometheus.Gatherer

	Events          *prometheus.CounterVec
	DomainErrors    *prometheus.CounterVec
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		gatherer: reg,
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clinic_events_total",
			Help: "Clinic changes by event type.",
		}, []string{"type"}),
		DomainErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clinic_domain_errors_total",
			Help: "Rejected clinic operations by error code.",
		}, []string{"code"}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clinic_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clinic_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.Events, m.DomainErrors, m.Requests, m.RequestDuration)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveDomainError(code string) {
	m.DomainErrors.WithLabelValues(code).Inc()
}

// EventSink counts dispatched events by type.
func (m *Metrics) EventSink() events.Sink {
	return eventCounter{m.Events}
}

type eventCounter struct {
	counter *prometheus.CounterVec
}

func (eventCounter) Name() string { return "metrics" }

func (c eventCounter) Write(_ context.Context, ev events.Event) error {
	c.counter.WithLabelValues(ev.Type).Inc()
	return nil
}

// Middleware records request counts and latency keyed by chi route pattern
// so path parameters do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		m.Requests.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.status)).Inc()
		m.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
