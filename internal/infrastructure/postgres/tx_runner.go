package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/retail-pos/internal/application/inventory"
	"github.com/jhoicas/retail-pos/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(stores repository.Stores) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return dbError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stores := repository.Stores{
		Products:    NewProductRepository(tx),
		Transitions: NewStockTransitionRepository(tx),
		Returns:     NewReturnRepository(tx),
		Orders:      NewOrderRepository(tx),
	}
	if err := fn(stores); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return dbError("commit transaction", fmt.Errorf("commit: %w", err))
	}
	return nil
}

// Stores devuelve repositorios atados al pool (fuera de transacción).
func Stores(pool *pgxpool.Pool) repository.Stores {
	return repository.Stores{
		Products:    NewProductRepository(pool),
		Transitions: NewStockTransitionRepository(pool),
		Returns:     NewReturnRepository(pool),
		Orders:      NewOrderRepository(pool),
	}
}
