package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-pos/internal/domain/entity"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}

func TestMetrics_ContadoresDelLibro(t *testing.T) {
	m := New()
	m.TransitionRecorded(entity.KindSale)
	m.TransitionRecorded(entity.KindSale)
	m.TransitionRejected(entity.KindSupplierReturn, "insufficient_stock")
	m.TransitionRejected("transfer", "invalid_type")
	m.ReturnAuditFailed()
	m.TransitionsReconciled(3)
	m.TransitionsReconciled(0)

	body := scrape(t, m)
	assert.Contains(t, body, `pos_ledger_transitions_total{type="sale"} 2`)
	assert.Contains(t, body, `pos_ledger_rejections_total{reason="insufficient_stock",type="supplier_return"} 1`)
	assert.Contains(t, body, `pos_ledger_rejections_total{reason="invalid_type",type="unknown"} 1`)
	assert.Contains(t, body, `pos_return_audit_failures_total 1`)
	assert.Contains(t, body, `pos_reconciled_transitions_total 3`)
}

func TestMetrics_MiddlewareUsaRutaDeclarada(t *testing.T) {
	m := New()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/api/products/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusTeapot)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/products/abc", nil))
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	body := scrape(t, m)
	assert.Contains(t, body, `pos_http_requests_total{code="418",method="GET",route="/api/products/:id"} 1`)
	assert.Contains(t, body, `pos_http_request_duration_seconds_bucket{route="/api/products/:id"`)
}
