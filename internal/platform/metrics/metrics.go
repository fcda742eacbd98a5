// Package metrics exposes Prometheus instrumentation for the HTTP layer
// and for department occupancy gauges.
package metrics

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// defaultDurationBuckets are the request-duration bucket boundaries in seconds.
var defaultDurationBuckets = []float64{
	0.010, 0.025, 0.050, 0.100, 0.250, 0.500, 1.0, 2.5, 5.0, 10.0,
}

// Provider owns the metric instruments and their registry.
type Provider struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	activeRequests  prometheus.Gauge
	occupiedBeds    *prometheus.GaugeVec
	admissionsTotal *prometheus.CounterVec
	dischargesTotal *prometheus.CounterVec
}

// NewProvider creates a Provider backed by its own registry, so tests can
// construct independent instances without duplicate-registration panics.
func NewProvider() *Provider {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Provider{
		registry: reg,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: defaultDurationBuckets,
		}, []string{"method", "route"}),
		activeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Name: "http_active_requests",
			Help: "Number of HTTP requests currently in flight.",
		}),
		occupiedBeds: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "department_occupied_beds",
			Help: "Occupied bed count per department.",
		}, []string{"department"}),
		admissionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "patient_admissions_total",
			Help: "Total patient admissions by department.",
		}, []string{"department"}),
		dischargesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "patient_discharges_total",
			Help: "Total patient discharges by reason.",
		}, []string{"reason"}),
	}
}

// Middleware records request counts, durations and the in-flight gauge for
// every HTTP request. Routes are labeled by pattern, not raw path, to keep
// cardinality bounded.
func (p *Provider) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p.activeRequests.Inc()
			timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
				route := c.Path()
				if route == "" {
					route = c.Request().URL.Path
				}
				p.requestDuration.WithLabelValues(c.Request().Method, route).Observe(v)
			}))

			err := next(c)

			timer.ObserveDuration()
			p.activeRequests.Dec()

			route := c.Path()
			if route == "" {
				route = c.Request().URL.Path
			}
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			p.requestsTotal.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()

			return err
		}
	}
}

// Handler serves the registry in Prometheus text exposition format.
func (p *Provider) Handler() echo.HandlerFunc {
	h := promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
	return func(c echo.Context) error {
		h.ServeHTTP(c.Response(), c.Request())
		return nil
	}
}

// SetOccupiedBeds updates the occupancy gauge for a department.
func (p *Provider) SetOccupiedBeds(department string, n int) {
	p.occupiedBeds.WithLabelValues(department).Set(float64(n))
}

// RecordAdmission increments the admission counter for a department.
func (p *Provider) RecordAdmission(department string) {
	p.admissionsTotal.WithLabelValues(department).Inc()
}

// RecordDischarge increments the discharge counter for a reason.
func (p *Provider) RecordDischarge(reason string) {
	p.dischargesTotal.WithLabelValues(reason).Inc()
}
