// Package metrics holds the Prometheus collectors of the admin service.
//
// Every Metrics owns its registry so tests and multiple applications in one
// process never collide on registration. A nil *Metrics records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "clinic_admin"

// Login outcomes.
const (
	LoginSuccess = "success"
	LoginInvalid = "invalid_credentials"
	LoginError   = "error"
)

type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal         *prometheus.CounterVec
	RequestDuration       *prometheus.HistogramVec
	LoginsTotal           *prometheus.CounterVec
	MenuRoleChangesTotal  *prometheus.CounterVec
	UnreachableGrants     prometheus.Gauge
	HousekeepingRunsTotal *prometheus.CounterVec
}

// New creates the collectors on a fresh registry that also carries the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by route and status",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"method", "route"},
		),
		LoginsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "logins_total",
				Help:      "Login attempts by outcome",
			},
			[]string{"outcome"},
		),
		MenuRoleChangesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "menu_role_changes_total",
				Help:      "Menu grants and revokes applied",
			},
			[]string{"op"},
		),
		UnreachableGrants: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "unreachable_grants",
				Help:      "Grants whose menu cannot be reached from a root, as of the last sweep",
			},
		),
		HousekeepingRunsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "housekeeping_runs_total",
				Help:      "Housekeeping sweeps by result",
			},
			[]string{"result"},
		),
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordLogin counts a login attempt.
func (m *Metrics) RecordLogin(outcome string) {
	if m == nil {
		return
	}
	m.LoginsTotal.WithLabelValues(outcome).Inc()
}

// RecordMenuRoleChange counts one applied grant ("grant") or revoke ("revoke").
func (m *Metrics) RecordMenuRoleChange(op string) {
	if m == nil {
		return
	}
	m.MenuRoleChangesTotal.WithLabelValues(op).Inc()
}

// RecordSweep stores the outcome of one housekeeping sweep.
func (m *Metrics) RecordSweep(unreachable int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.HousekeepingRunsTotal.WithLabelValues("error").Inc()
		return
	}
	m.HousekeepingRunsTotal.WithLabelValues("ok").Inc()
	m.UnreachableGrants.Set(float64(unreachable))
}

// HTTPMiddleware counts requests and observes latency per matched route
// pattern. It must wrap the ServeMux so the pattern is known after routing.
func (m *Metrics) HTTPMiddleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rw.status)).Inc()
		m.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
