package repository

import (
	"context"
	"time"

	"github.com/jhoicas/retail-pos/internal/domain/entity"
)

// ReturnFilter filtros del listado de devoluciones.
type ReturnFilter struct {
	ProductID  string
	ReturnType string
	From       *time.Time
	To         *time.Time
}

// ReturnRepository puerto de persistencia para devoluciones.
type ReturnRepository interface {
	Create(ctx context.Context, r *entity.Return) error
	GetByID(ctx context.Context, id string) (*entity.Return, error)
	List(ctx context.Context, filter ReturnFilter, limit, offset int) ([]*entity.Return, int, error)
	// ListWithoutTransition devuelve devoluciones completadas sin movimiento enlazado.
	ListWithoutTransition(ctx context.Context, limit int) ([]*entity.Return, error)
}
