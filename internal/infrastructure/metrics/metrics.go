// Package metrics expone los contadores Prometheus del libro de inventario y del servidor HTTP.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/retail-pos/internal/application/inventory"
	"github.com/jhoicas/retail-pos/internal/domain/entity"
)

var _ inventory.Metrics = (*Metrics)(nil)

// Metrics registro propio (no el global) con los contadores del punto de venta.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	transitions     *prometheus.CounterVec
	rejections      *prometheus.CounterVec
	auditFailures   prometheus.Counter
	reconciled      prometheus.Counter
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New inicializa el registry y registra todos los contadores.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_ledger_transitions_total",
			Help: "Movimientos de inventario registrados por tipo.",
		}, []string{"type"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_ledger_rejections_total",
			Help: "Movimientos rechazados por tipo y motivo.",
		}, []string{"type", "reason"}),
		auditFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_return_audit_failures_total",
			Help: "Devoluciones confirmadas cuyo movimiento de auditoría no se pudo escribir.",
		}),
		reconciled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_reconciled_transitions_total",
			Help: "Movimientos de devolución reparados por la reconciliación.",
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_http_requests_total",
			Help: "Peticiones HTTP por ruta, método y status.",
		}, []string{"route", "method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pos_http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP por ruta.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
	registry.MustRegister(m.transitions, m.rejections, m.auditFailures, m.reconciled, m.requestsTotal, m.requestDuration)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// kindLabel acota la cardinalidad: tipos desconocidos se agrupan.
func kindLabel(k entity.TransitionKind) string {
	if k.Valid() {
		return string(k)
	}
	return "unknown"
}

// TransitionRecorded cuenta un movimiento confirmado.
func (m *Metrics) TransitionRecorded(kind entity.TransitionKind) {
	m.transitions.WithLabelValues(kindLabel(kind)).Inc()
}

// TransitionRejected cuenta un movimiento rechazado.
func (m *Metrics) TransitionRejected(kind entity.TransitionKind, reason string) {
	m.rejections.WithLabelValues(kindLabel(kind), reason).Inc()
}

// ReturnAuditFailed cuenta una escritura secundaria fallida.
func (m *Metrics) ReturnAuditFailed() { m.auditFailures.Inc() }

// TransitionsReconciled suma los movimientos reparados.
func (m *Metrics) TransitionsReconciled(n int) {
	if n > 0 {
		m.reconciled.Add(float64(n))
	}
}

// Handler endpoint /metrics en formato de exposición Prometheus.
func (m *Metrics) Handler() http.Handler {
	return m.handler
}

// Middleware registra conteo y latencia de cada petición usando la ruta declarada (no la URL).
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		code := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			} else {
				code = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		m.requestsTotal.WithLabelValues(route, c.Method(), strconv.Itoa(code)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		return err
	}
}
