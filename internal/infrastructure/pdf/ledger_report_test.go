package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jhoicas/retail-pos/internal/application/inventory"
	"github.com/jhoicas/retail-pos/internal/domain/entity"
	"github.com/jhoicas/retail-pos/internal/domain/repository"
)

func TestGenerateLedgerReport_ProducePDF(t *testing.T) {
	g := NewLedgerReportGenerator(language.Spanish)
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	report := inventory.LedgerReport{
		GeneratedAt: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		GeneratedBy: "Ana",
		Filter:      repository.TransitionFilter{TransactionType: entity.KindSale, From: &from},
		Transitions: []*entity.StockTransition{{
			ID: "t-1", ProductName: "Café molido 500g", TransactionType: entity.KindSale,
			Quantity: 3, PreviousStock: 10, NewStock: 7,
			TotalValue: decimal.RequireFromString("19.50"), CreatedAt: from.Add(time.Hour),
		}},
		Total:     1500,
		Truncated: true,
	}

	out, err := g.GenerateLedgerReport(context.Background(), report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestMoney_FormatoRegional(t *testing.T) {
	es := NewLedgerReportGenerator(language.Spanish)
	en := NewLedgerReportGenerator(language.English)
	v := decimal.RequireFromString("1234567.5")
	assert.Equal(t, "$1.234.567,50", es.money(v))
	assert.Equal(t, "$1,234,567.50", en.money(v))
}

func TestDescribeFilter(t *testing.T) {
	assert.Equal(t, "Todos los movimientos", describeFilter(inventory.LedgerReport{}))
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	got := describeFilter(inventory.LedgerReport{Filter: repository.TransitionFilter{ProductID: "p-1", To: &to}})
	assert.Equal(t, "Filtro: producto p-1, hasta 31/03/2026", got)
	assert.Equal(t, "Café…", truncate("Café molido", 5))
}
