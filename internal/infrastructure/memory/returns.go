package memory

import (
	"context"

	"github.com/jhoicas/retail-pos/internal/domain/entity"
	"github.com/jhoicas/retail-pos/internal/domain/repository"
)

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo devoluciones en memoria.
type ReturnRepo struct {
	s  *Store
	tx *tx
}

// Create agrega una devolución.
func (r *ReturnRepo) Create(_ context.Context, ret *entity.Return) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *ret
	r.s.returns = append(r.s.returns, &c)
	id := ret.ID
	r.tx.record(func() {
		for i := len(r.s.returns) - 1; i >= 0; i-- {
			if r.s.returns[i].ID == id {
				r.s.returns = append(r.s.returns[:i], r.s.returns[i+1:]...)
				return
			}
		}
	})
	return nil
}

// GetByID obtiene una devolución o nil.
func (r *ReturnRepo) GetByID(_ context.Context, id string) (*entity.Return, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, ret := range r.s.returns {
		if ret.ID == id {
			c := *ret
			return &c, nil
		}
	}
	return nil, nil
}

// List filtra y pagina, más recientes primero.
func (r *ReturnRepo) List(_ context.Context, f repository.ReturnFilter, limit, offset int) ([]*entity.Return, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Return
	for _, ret := range r.s.returns {
		if f.ProductID != "" && ret.ProductID != f.ProductID {
			continue
		}
		if f.ReturnType != "" && ret.ReturnType != f.ReturnType {
			continue
		}
		if f.From != nil && ret.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && ret.CreatedAt.After(*f.To) {
			continue
		}
		c := *ret
		list = append(list, &c)
	}
	sortNewestFirst(list, func(r *entity.Return) int64 { return r.CreatedAt.UnixNano() })
	return page(list, limit, offset), len(list), nil
}

// ListWithoutTransition devoluciones completadas sin movimiento enlazado, más antiguas primero.
func (r *ReturnRepo) ListWithoutTransition(_ context.Context, limit int) ([]*entity.Return, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	linked := make(map[string]bool)
	for _, t := range r.s.transitions {
		if t.TransactionType == entity.KindCustomerReturn || t.TransactionType == entity.KindSupplierReturn {
			linked[t.Reference] = true
		}
	}
	out := []*entity.Return{}
	for _, ret := range r.s.returns {
		if ret.Status != entity.ReturnStatusCompleted || linked[ret.ID] {
			continue
		}
		c := *ret
		out = append(out, &c)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
