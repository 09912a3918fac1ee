package repository

import (
	"context"

	"github.com/jhoicas/retail-pos/internal/domain/entity"
)

// OrderRepository puerto de persistencia para órdenes de venta (cabecera + líneas).
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
}
