package inventory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-pos/internal/application/inventory"
	"github.com/jhoicas/retail-pos/internal/domain/entity"
	"github.com/jhoicas/retail-pos/internal/domain/repository"
	"github.com/jhoicas/retail-pos/internal/infrastructure/memory"
)

func seedLedger(t *testing.T, s *memory.Store, n int, base time.Time) {
	t.Helper()
	repo := s.Transitions()
	for i := 0; i < n; i++ {
		kind := entity.KindSale
		if i%3 == 0 {
			kind = entity.KindPurchase
		}
		product := "p-1"
		if i%2 == 0 {
			product = "p-2"
		}
		require.NoError(t, repo.Create(context.Background(), &entity.StockTransition{
			ID:              fmt.Sprintf("t-%03d", i),
			ProductID:       product,
			TransactionType: kind,
			Quantity:        1,
			CreatedAt:       base.Add(time.Duration(i) * time.Minute),
		}))
	}
}

// Página 2 de 50 sobre 120 movimientos: 50 filas y 3 páginas.
func TestLedgerQuery_Paginacion(t *testing.T) {
	s := memory.NewStore()
	seedLedger(t, s, 120, time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	q := inventory.NewLedgerQuery(s.Transitions())

	page, err := q.List(context.Background(), repository.TransitionFilter{}, 2, 50)
	require.NoError(t, err)
	assert.Len(t, page.Transitions, 50)
	assert.Equal(t, 2, page.Pagination.Page)
	assert.Equal(t, 50, page.Pagination.Limit)
	assert.Equal(t, 120, page.Pagination.Total)
	assert.Equal(t, 3, page.Pagination.Pages)
	assert.Equal(t, "t-069", page.Transitions[0].ID, "orden descendente por fecha")

	last, err := q.List(context.Background(), repository.TransitionFilter{}, 3, 50)
	require.NoError(t, err)
	assert.Len(t, last.Transitions, 20)
}

func TestLedgerQuery_Filtros(t *testing.T) {
	s := memory.NewStore()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	seedLedger(t, s, 12, base)
	q := inventory.NewLedgerQuery(s.Transitions())
	ctx := context.Background()

	page, err := q.List(ctx, repository.TransitionFilter{ProductID: "p-1"}, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 6, page.Pagination.Total)
	assert.Equal(t, inventory.DefaultPageSize, page.Pagination.Limit)

	page, err = q.List(ctx, repository.TransitionFilter{TransactionType: entity.KindPurchase}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 4, page.Pagination.Total)

	from := base.Add(2 * time.Minute)
	to := base.Add(4 * time.Minute)
	page, err = q.List(ctx, repository.TransitionFilter{From: &from, To: &to}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Pagination.Total, "límites inclusivos")
}

func TestLedgerQuery_Vacio(t *testing.T) {
	q := inventory.NewLedgerQuery(memory.NewStore().Transitions())
	page, err := q.List(context.Background(), repository.TransitionFilter{}, 0, 0)
	require.NoError(t, err)
	assert.NotNil(t, page.Transitions)
	assert.Empty(t, page.Transitions)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Zero(t, page.Pagination.Pages)
}

func TestLedgerQuery_AllRecorrePaginas(t *testing.T) {
	s := memory.NewStore()
	seedLedger(t, s, 450, time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	q := inventory.NewLedgerQuery(s.Transitions())

	all, err := q.All(context.Background(), repository.TransitionFilter{}, 1000)
	require.NoError(t, err)
	assert.Len(t, all, 450)

	capped, err := q.All(context.Background(), repository.TransitionFilter{}, 300)
	require.NoError(t, err)
	assert.Len(t, capped, 300)
}

func TestNewPagination(t *testing.T) {
	p := inventory.NewPagination(0, 1000, 401)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, inventory.MaxPageSize, p.Limit)
	assert.Equal(t, 3, p.Pages)
	assert.Equal(t, 0, p.Offset())
	assert.Equal(t, 100, inventory.NewPagination(3, 50, 0).Offset())
}

func TestPageLimits_Configurados(t *testing.T) {
	s := memory.NewStore()
	seedLedger(t, s, 30, time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	q := inventory.NewLedgerQuery(s.Transitions()).WithLimits(inventory.PageLimits{Default: 10, Max: 20})

	page, err := q.List(context.Background(), repository.TransitionFilter{}, 1, 0)
	require.NoError(t, err)
	assert.Len(t, page.Transitions, 10)
	assert.Equal(t, 3, page.Pagination.Pages)

	page, err = q.List(context.Background(), repository.TransitionFilter{}, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 20, page.Pagination.Limit)
}

type capturingGenerator struct {
	got inventory.LedgerReport
}

func (g *capturingGenerator) GenerateLedgerReport(_ context.Context, r inventory.LedgerReport) ([]byte, error) {
	g.got = r
	return []byte("%PDF-fake"), nil
}

func TestLedgerReporter_TruncaAlLimite(t *testing.T) {
	s := memory.NewStore()
	seedLedger(t, s, inventory.MaxReportRows+25, time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	gen := &capturingGenerator{}
	r := inventory.NewLedgerReporter(s.Transitions(), gen)

	out, err := r.Render(context.Background(), repository.TransitionFilter{}, cajero)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(out))
	assert.Len(t, gen.got.Transitions, inventory.MaxReportRows)
	assert.Equal(t, inventory.MaxReportRows+25, gen.got.Total)
	assert.True(t, gen.got.Truncated)
	assert.Equal(t, "Ana Cajera", gen.got.GeneratedBy)
}
