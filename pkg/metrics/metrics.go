// Package metrics expone métricas Prometheus de la API: tráfico HTTP por ruta, resultados del
// cierre de remisiones y reportes diarios por modo de agregación.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resultados del cierre de una remisión.
const (
	CloseOK             = "ok"
	CloseEmptySales     = "empty_sales"
	CloseCreditsExceed  = "credits_exceed_sales"
	CloseInvalidState   = "invalid_transition"
	CloseNotFound       = "not_found"
	CloseInternalFailed = "error"
)

// Metrics registro propio (no el global) con las métricas de la aplicación.
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	closeTotal      *prometheus.CounterVec
	reportTotal     *prometheus.CounterVec
}

// New inicializa el registro y las métricas.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "remisiones_http_requests_total",
		Help: "Peticiones HTTP por ruta y código de estado.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "remisiones_http_request_duration_seconds",
		Help:    "Duración de las peticiones HTTP por ruta.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	closes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "remisiones_remission_close_total",
		Help: "Intentos de cierre de remisión por resultado.",
	}, []string{"outcome"})
	reports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "remisiones_daily_report_total",
		Help: "Reportes de ventas diarias generados por modo de agregación.",
	}, []string{"mode"})
	registry.MustRegister(requests, duration, closes, reports)
	return &Metrics{
		registry:        registry,
		requestsTotal:   requests,
		requestDuration: duration,
		closeTotal:      closes,
		reportTotal:     reports,
	}
}

// Handler sirve /metrics en Fiber.
func (m *Metrics) Handler() fiber.Handler {
	if m == nil {
		return func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusServiceUnavailable) }
	}
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Middleware registra conteo y duración por ruta (patrón, no la URL concreta).
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m == nil {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
		route := "unknown"
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		return err
	}
}

// ObserveClose cuenta un intento de cierre con su resultado.
func (m *Metrics) ObserveClose(outcome string) {
	if m == nil {
		return
	}
	m.closeTotal.WithLabelValues(outcome).Inc()
}

// ObserveReport cuenta un reporte diario generado.
func (m *Metrics) ObserveReport(mode string) {
	if m == nil {
		return
	}
	m.reportTotal.WithLabelValues(mode).Inc()
}

// Registerer expone el registro para métricas adicionales.
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}
