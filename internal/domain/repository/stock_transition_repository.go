package repository

import (
	"context"
	"time"

	"github.com/jhoicas/retail-pos/internal/domain/entity"
)

// TransitionFilter filtra el libro. TransactionType vacío significa todos los tipos.
// From y To son inclusivos sobre CreatedAt.
type TransitionFilter struct {
	ProductID       string
	TransactionType entity.TransitionKind
	From            *time.Time
	To              *time.Time
}

// StockTransitionRepository puerto del libro de inventario (solo inserción y lectura).
type StockTransitionRepository interface {
	Create(ctx context.Context, t *entity.StockTransition) error
	GetByID(ctx context.Context, id string) (*entity.StockTransition, error)
	// List devuelve la página ordenada por CreatedAt descendente y el total sin paginar.
	List(ctx context.Context, filter TransitionFilter, limit, offset int) ([]*entity.StockTransition, int, error)
	CountByProduct(ctx context.Context, productID string) (int, error)
}
