package memory

import (
	"context"

	"github.com/jhoicas/retail-pos/internal/domain"
	"github.com/jhoicas/retail-pos/internal/domain/entity"
	"github.com/jhoicas/retail-pos/internal/domain/repository"
)

var _ repository.StockTransitionRepository = (*TransitionRepo)(nil)

// TransitionRepo libro en memoria (solo inserción).
type TransitionRepo struct {
	s  *Store
	tx *tx
}

func copyTransition(t *entity.StockTransition) *entity.StockTransition {
	c := *t
	if t.Party != nil {
		p := *t.Party
		c.Party = &p
	}
	return &c
}

// isReturnKind movimientos enlazados a una devolución por Reference.
func isReturnKind(k entity.TransitionKind) bool {
	return k == entity.KindCustomerReturn || k == entity.KindSupplierReturn
}

// Create agrega un movimiento. Un ID repetido o una segunda fila enlazada a la misma
// devolución devuelven ErrDuplicate (mismo contrato que el índice único en PostgreSQL).
func (r *TransitionRepo) Create(_ context.Context, t *entity.StockTransition) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.transitions {
		if existing.ID == t.ID {
			return domain.ErrDuplicate
		}
		if isReturnKind(t.TransactionType) && t.Reference != "" &&
			isReturnKind(existing.TransactionType) && existing.Reference == t.Reference {
			return domain.ErrDuplicate
		}
	}
	r.s.transitions = append(r.s.transitions, copyTransition(t))
	id := t.ID
	r.tx.record(func() {
		for i := len(r.s.transitions) - 1; i >= 0; i-- {
			if r.s.transitions[i].ID == id {
				r.s.transitions = append(r.s.transitions[:i], r.s.transitions[i+1:]...)
				return
			}
		}
	})
	return nil
}

// GetByID obtiene un movimiento o nil.
func (r *TransitionRepo) GetByID(_ context.Context, id string) (*entity.StockTransition, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, t := range r.s.transitions {
		if t.ID == id {
			return copyTransition(t), nil
		}
	}
	return nil, nil
}

func matchTransition(t *entity.StockTransition, f repository.TransitionFilter) bool {
	if f.ProductID != "" && t.ProductID != f.ProductID {
		return false
	}
	if f.TransactionType != "" && t.TransactionType != f.TransactionType {
		return false
	}
	if f.From != nil && t.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && t.CreatedAt.After(*f.To) {
		return false
	}
	return true
}

// List filtra y pagina, más recientes primero.
func (r *TransitionRepo) List(_ context.Context, filter repository.TransitionFilter, limit, offset int) ([]*entity.StockTransition, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.StockTransition
	for _, t := range r.s.transitions {
		if matchTransition(t, filter) {
			list = append(list, copyTransition(t))
		}
	}
	sortNewestFirst(list, func(t *entity.StockTransition) int64 { return t.CreatedAt.UnixNano() })
	return page(list, limit, offset), len(list), nil
}

// CountByProduct cuenta los movimientos de un producto.
func (r *TransitionRepo) CountByProduct(_ context.Context, productID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, t := range r.s.transitions {
		if t.ProductID == productID {
			n++
		}
	}
	return n, nil
}
