package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-pos/internal/domain"
	"github.com/jhoicas/retail-pos/internal/domain/entity"
	"github.com/jhoicas/retail-pos/internal/domain/repository"
)

var _ repository.StockTransitionRepository = (*StockTransitionRepo)(nil)

const transitionColumns = `id, product_id, product_name, transaction_type, quantity, previous_stock, new_stock,
	unit_price, total_value, reference, party_name, party_type, party_id, user_id, user_name, notes, created_at`

// StockTransitionRepo libro de inventario sobre PostgreSQL (solo INSERT y SELECT).
type StockTransitionRepo struct {
	q Querier
}

// NewStockTransitionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransitionRepository(q Querier) *StockTransitionRepo {
	return &StockTransitionRepo{q: q}
}

func scanTransition(row pgx.Row) (*entity.StockTransition, error) {
	var t entity.StockTransition
	var kind string
	var partyName, partyType, partyID *string
	if err := row.Scan(&t.ID, &t.ProductID, &t.ProductName, &kind, &t.Quantity, &t.PreviousStock, &t.NewStock,
		&t.UnitPrice, &t.TotalValue, &t.Reference, &partyName, &partyType, &partyID,
		&t.UserID, &t.UserName, &t.Notes, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.TransactionType = entity.TransitionKind(kind)
	if partyType != nil {
		t.Party = &entity.Party{Name: derefString(partyName), Type: *partyType, ID: derefString(partyID)}
	}
	return &t, nil
}

// Create inserta un movimiento del libro.
func (r *StockTransitionRepo) Create(ctx context.Context, t *entity.StockTransition) error {
	var partyName, partyType, partyID *string
	if t.Party != nil {
		partyName, partyType, partyID = nullString(t.Party.Name), nullString(t.Party.Type), nullString(t.Party.ID)
	}
	query := `
		INSERT INTO stock_transitions (` + transitionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.ProductID, t.ProductName, string(t.TransactionType), t.Quantity, t.PreviousStock, t.NewStock,
		t.UnitPrice, t.TotalValue, t.Reference, partyName, partyType, partyID,
		t.UserID, t.UserName, t.Notes, t.CreatedAt,
	)
	if err != nil && isUniqueViolation(err) {
		// PK o stock_transitions_return_link_idx: la devolución ya tiene su movimiento.
		return fmt.Errorf("insert stock transition %s: %w", t.ID, domain.ErrDuplicate)
	}
	return dbError("insert stock transition", err)
}

// GetByID obtiene un movimiento por ID.
func (r *StockTransitionRepo) GetByID(ctx context.Context, id string) (*entity.StockTransition, error) {
	t, err := scanTransition(r.q.QueryRow(ctx, `SELECT `+transitionColumns+` FROM stock_transitions WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, dbError("get stock transition", err)
	}
	return t, nil
}

func transitionFilter(f repository.TransitionFilter) *filterBuilder {
	b := &filterBuilder{}
	if f.ProductID != "" {
		b.add("product_id = $%d", f.ProductID)
	}
	if f.TransactionType != "" {
		b.add("transaction_type = $%d", string(f.TransactionType))
	}
	b.addTimeRange("created_at", f.From, f.To)
	return b
}

// List devuelve la página filtrada (más recientes primero) y el total sin paginar.
func (r *StockTransitionRepo) List(ctx context.Context, filter repository.TransitionFilter, limit, offset int) ([]*entity.StockTransition, int, error) {
	b := transitionFilter(filter)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM stock_transitions`+b.clause(), b.args...).Scan(&total); err != nil {
		return nil, 0, dbError("count stock transitions", err)
	}

	pageSQL, args := b.page(limit, offset)
	rows, err := r.q.Query(ctx,
		`SELECT `+transitionColumns+` FROM stock_transitions`+b.clause()+` ORDER BY created_at DESC, id DESC`+pageSQL,
		args...)
	if err != nil {
		return nil, 0, dbError("list stock transitions", err)
	}
	defer rows.Close()
	list := []*entity.StockTransition{}
	for rows.Next() {
		t, err := scanTransition(rows)
		if err != nil {
			return nil, 0, dbError("scan stock transition", err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dbError("list stock transitions", err)
	}
	return list, total, nil
}

// CountByProduct cuenta los movimientos de un producto.
func (r *StockTransitionRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM stock_transitions WHERE product_id = $1`, productID).Scan(&n); err != nil {
		return 0, dbError("count stock transitions by product", err)
	}
	return n, nil
}
