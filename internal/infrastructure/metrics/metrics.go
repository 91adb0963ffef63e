// Package metrics expone contadores Prometheus del negocio y de HTTP.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa las métricas registradas.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Negocio
	ReviewsTotal           *prometheus.CounterVec
	PermissionAssignsTotal *prometheus.CounterVec
	PermissionsSeededTotal *prometheus.CounterVec
}

// New crea y registra las métricas en un registry propio (más los collectors de Go y proceso).
func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vendormgmt_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vendormgmt_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		ReviewsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vendormgmt_reviews_total",
				Help: "Review submissions by target kind and result",
			},
			[]string{"target", "result"},
		),
		PermissionAssignsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vendormgmt_permission_assignments_total",
				Help: "Permission grants and revokes",
			},
			[]string{"action"},
		),
		PermissionsSeededTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vendormgmt_permissions_seeded_total",
				Help: "Catalog permissions created or renamed by seeding",
			},
			[]string{"outcome"},
		),
	}
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ReviewsTotal,
		m.PermissionAssignsTotal,
		m.PermissionsSeededTotal,
	)
	return m
}

// Handler handler HTTP de /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry registry subyacente (tests).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTP registra una request terminada.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ReviewSubmitted cuenta un envío de reseña.
func (m *Metrics) ReviewSubmitted(targetKind, result string) {
	m.ReviewsTotal.WithLabelValues(targetKind, result).Inc()
}

// PermissionAssigned cuenta un grant o revoke.
func (m *Metrics) PermissionAssigned(action string) {
	m.PermissionAssignsTotal.WithLabelValues(action).Inc()
}

// PermissionsSeeded suma lo creado y renombrado por una siembra.
func (m *Metrics) PermissionsSeeded(created, renamed int) {
	m.PermissionsSeededTotal.WithLabelValues("created").Add(float64(created))
	m.PermissionsSeededTotal.WithLabelValues("renamed").Add(float64(renamed))
}
