package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/retail-pos/internal/domain/entity"
	"github.com/jhoicas/retail-pos/internal/domain/repository"
)

// MaxReportRows tope de filas de un reporte exportado.
const MaxReportRows = 1000

// LedgerReport datos que recibe el generador.
type LedgerReport struct {
	GeneratedAt time.Time
	GeneratedBy string
	Filter      repository.TransitionFilter
	Transitions []*entity.StockTransition
	Total       int  // filas que cumplen el filtro
	Truncated   bool // Total > len(Transitions)
}

// LedgerReportGenerator renderiza el reporte (PDF en infrastructure/pdf).
type LedgerReportGenerator interface {
	GenerateLedgerReport(ctx context.Context, report LedgerReport) ([]byte, error)
}

// LedgerReporter exporta el libro filtrado.
type LedgerReporter struct {
	transitions repository.StockTransitionRepository
	query       *LedgerQuery
	generator   LedgerReportGenerator
	now         func() time.Time
}

// NewLedgerReporter construye el caso de uso.
func NewLedgerReporter(transitions repository.StockTransitionRepository, generator LedgerReportGenerator) *LedgerReporter {
	return &LedgerReporter{
		transitions: transitions,
		query:       NewLedgerQuery(transitions),
		generator:   generator,
		now:         time.Now,
	}
}

// Render arma el reporte con hasta MaxReportRows movimientos.
func (r *LedgerReporter) Render(ctx context.Context, filter repository.TransitionFilter, actor entity.ActingUser) ([]byte, error) {
	_, total, err := r.transitions.List(ctx, filter, 1, 0)
	if err != nil {
		return nil, err
	}
	list, err := r.query.All(ctx, filter, MaxReportRows)
	if err != nil {
		return nil, err
	}
	return r.generator.GenerateLedgerReport(ctx, LedgerReport{
		GeneratedAt: r.now().UTC(),
		GeneratedBy: actor.Name,
		Filter:      filter,
		Transitions: list,
		Total:       total,
		Truncated:   total > len(list),
	})
}
