package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/retail-pos/internal/domain"
	"github.com/jhoicas/retail-pos/internal/domain/entity"
	"github.com/jhoicas/retail-pos/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct {
	s  *Store
	tx *tx
}

func copyProduct(p *entity.Product) *entity.Product {
	c := *p
	if p.Discount != nil {
		d := *p.Discount
		c.Discount = &d
	}
	return &c
}

// Create inserta un producto; SKU no vacío debe ser único.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.ID]; ok {
		return domain.ErrDuplicate
	}
	if product.SKU != "" {
		for _, p := range r.s.products {
			if p.SKU == product.SKU {
				return domain.ErrDuplicate
			}
		}
	}
	r.s.products[product.ID] = copyProduct(product)
	id := product.ID
	r.tx.record(func() { delete(r.s.products, id) })
	return nil
}

// GetByID obtiene un producto o nil.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return copyProduct(p), nil
}

// GetForUpdate en memoria equivale a GetByID: la transacción ya está serializada.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// GetBySKU busca por SKU exacto.
func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.SKU == sku {
			return copyProduct(p), nil
		}
	}
	return nil, nil
}

// Update actualiza los atributos de catálogo conservando el stock almacenado.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[product.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if product.SKU != "" {
		for id, p := range r.s.products {
			if id != product.ID && p.SKU == product.SKU {
				return domain.ErrDuplicate
			}
		}
	}
	prev := copyProduct(cur)
	next := copyProduct(product)
	next.Stock = cur.Stock
	r.s.products[product.ID] = next
	r.tx.record(func() { r.s.products[prev.ID] = prev })
	return nil
}

// UpdateStock fija el stock de un producto.
func (r *ProductRepo) UpdateStock(_ context.Context, id string, stock int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	prev := p.Stock
	p.Stock = stock
	r.tx.record(func() {
		if cur, ok := r.s.products[id]; ok {
			cur.Stock = prev
		}
	})
	return nil
}

// List filtra por categoría y búsqueda, ordenado por nombre.
func (r *ProductRepo) List(_ context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Product
	for _, p := range r.s.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !containsFold(p.Name, filter.Search) && !containsFold(p.SKU, filter.Search) {
			continue
		}
		list = append(list, copyProduct(p))
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name == list[j].Name {
			return list[i].ID < list[j].ID
		}
		return list[i].Name < list[j].Name
	})
	return page(list, limit, offset), len(list), nil
}

// Delete elimina un producto.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	// Igual que la FK de PostgreSQL: no se borra un producto referenciado por el libro.
	for _, t := range r.s.transitions {
		if t.ProductID == id {
			return fmt.Errorf("delete product: %w", domain.ErrConflict)
		}
	}
	for _, ret := range r.s.returns {
		if ret.ProductID == id {
			return fmt.Errorf("delete product: %w", domain.ErrConflict)
		}
	}
	delete(r.s.products, id)
	r.tx.record(func() { r.s.products[id] = p })
	return nil
}
