package inventory

import (
	"context"
	"math"

	"github.com/jhoicas/retail-pos/internal/domain/entity"
	"github.com/jhoicas/retail-pos/internal/domain/repository"
)

// Valores por defecto de paginación del libro.
const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Pagination metadatos de una página.
type Pagination struct {
	Page  int
	Limit int
	Total int
	Pages int
}

// PageLimits tamaño de página por defecto y máximo.
type PageLimits struct {
	Default int
	Max     int
}

// DefaultPageLimits límites usados cuando no se configuran otros.
func DefaultPageLimits() PageLimits {
	return PageLimits{Default: DefaultPageSize, Max: MaxPageSize}
}

// NewPagination normaliza page/limit con los límites por defecto y calcula el número de páginas.
func NewPagination(page, limit, total int) Pagination {
	return DefaultPageLimits().Paginate(page, limit, total)
}

// Paginate normaliza page/limit contra l y calcula el número de páginas.
func (l PageLimits) Paginate(page, limit, total int) Pagination {
	if l.Default <= 0 {
		l.Default = DefaultPageSize
	}
	if l.Max < l.Default {
		l.Max = l.Default
	}
	if limit <= 0 {
		limit = l.Default
	}
	if limit > l.Max {
		limit = l.Max
	}
	if page <= 0 {
		page = 1
	}
	pages := int(math.Ceil(float64(total) / float64(limit)))
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// Offset desplazamiento de la página actual.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TransitionPage página del libro.
type TransitionPage struct {
	Transitions []*entity.StockTransition
	Pagination  Pagination
}

// LedgerQuery acceso de solo lectura al libro para reportes y auditoría.
type LedgerQuery struct {
	transitions repository.StockTransitionRepository
	limits      PageLimits
}

// NewLedgerQuery construye el caso de uso.
func NewLedgerQuery(transitions repository.StockTransitionRepository) *LedgerQuery {
	return &LedgerQuery{transitions: transitions, limits: DefaultPageLimits()}
}

// WithLimits reemplaza los límites de paginación.
func (q *LedgerQuery) WithLimits(l PageLimits) *LedgerQuery {
	q.limits = l
	return q
}

// List devuelve movimientos filtrados, ordenados por fecha de creación descendente.
func (q *LedgerQuery) List(ctx context.Context, filter repository.TransitionFilter, page, limit int) (*TransitionPage, error) {
	pg := q.limits.Paginate(page, limit, 0)
	list, total, err := q.transitions.List(ctx, filter, pg.Limit, pg.Offset())
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*entity.StockTransition{}
	}
	return &TransitionPage{Transitions: list, Pagination: q.limits.Paginate(pg.Page, pg.Limit, total)}, nil
}

// All recorre las páginas hasta max filas (para exportes).
func (q *LedgerQuery) All(ctx context.Context, filter repository.TransitionFilter, max int) ([]*entity.StockTransition, error) {
	out := make([]*entity.StockTransition, 0, MaxPageSize)
	for offset := 0; offset < max; offset += MaxPageSize {
		limit := MaxPageSize
		if max-offset < limit {
			limit = max - offset
		}
		list, _, err := q.transitions.List(ctx, filter, limit, offset)
		if err != nil {
			return nil, err
		}
		out = append(out, list...)
		if len(list) < limit {
			break
		}
	}
	return out, nil
}
