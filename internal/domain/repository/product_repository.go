package repository

import (
	"context"

	"github.com/jhoicas/retail-pos/internal/domain/entity"
)

// ProductFilter filtros opcionales para el listado del catálogo.
type ProductFilter struct {
	Category string
	Search   string // coincidencia parcial en nombre o SKU
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// Update modifica los atributos de catálogo. Nunca toca Stock.
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock es la única vía de escritura del stock (usada por el libro).
	UpdateStock(ctx context.Context, id string, stock int) error
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, int, error)
	Delete(ctx context.Context, id string) error
}
