package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-pos/internal/domain/entity"
	"github.com/jhoicas/retail-pos/internal/domain/repository"
)

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

const returnColumns = `id, product_id, product_name, return_type, quantity, reason, notes, unit_price, total_value,
	previous_stock, new_stock, party_name, party_id, user_id, user_name, status, created_at`

// ReturnRepo devoluciones sobre PostgreSQL.
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

func scanReturn(row pgx.Row) (*entity.Return, error) {
	var r entity.Return
	if err := row.Scan(&r.ID, &r.ProductID, &r.ProductName, &r.ReturnType, &r.Quantity, &r.Reason, &r.Notes,
		&r.UnitPrice, &r.TotalValue, &r.PreviousStock, &r.NewStock, &r.PartyName, &r.PartyID,
		&r.UserID, &r.UserName, &r.Status, &r.CreatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// Create inserta la devolución.
func (r *ReturnRepo) Create(ctx context.Context, ret *entity.Return) error {
	query := `
		INSERT INTO returns (` + returnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		ret.ID, ret.ProductID, ret.ProductName, ret.ReturnType, ret.Quantity, ret.Reason, ret.Notes,
		ret.UnitPrice, ret.TotalValue, ret.PreviousStock, ret.NewStock, ret.PartyName, ret.PartyID,
		ret.UserID, ret.UserName, ret.Status, ret.CreatedAt,
	)
	return dbError("insert return", err)
}

// GetByID obtiene una devolución por ID.
func (r *ReturnRepo) GetByID(ctx context.Context, id string) (*entity.Return, error) {
	ret, err := scanReturn(r.q.QueryRow(ctx, `SELECT `+returnColumns+` FROM returns WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, dbError("get return", err)
	}
	return ret, nil
}

// List filtra y pagina, más recientes primero.
func (r *ReturnRepo) List(ctx context.Context, f repository.ReturnFilter, limit, offset int) ([]*entity.Return, int, error) {
	b := &filterBuilder{}
	if f.ProductID != "" {
		b.add("product_id = $%d", f.ProductID)
	}
	if f.ReturnType != "" {
		b.add("return_type = $%d", f.ReturnType)
	}
	b.addTimeRange("created_at", f.From, f.To)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM returns`+b.clause(), b.args...).Scan(&total); err != nil {
		return nil, 0, dbError("count returns", err)
	}
	pageSQL, args := b.page(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+returnColumns+` FROM returns`+b.clause()+` ORDER BY created_at DESC, id DESC`+pageSQL, args...)
	if err != nil {
		return nil, 0, dbError("list returns", err)
	}
	list, err := collectReturns(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListWithoutTransition devoluciones completadas cuyo movimiento enlazado no existe, más antiguas primero.
func (r *ReturnRepo) ListWithoutTransition(ctx context.Context, limit int) ([]*entity.Return, error) {
	query := `
		SELECT ` + returnColumns + ` FROM returns r
		WHERE r.status = 'completed'
		  AND NOT EXISTS (
		      SELECT 1 FROM stock_transitions t
		      WHERE t.reference = r.id::text
		        AND t.transaction_type IN ('customer_return', 'supplier_return'))
		ORDER BY r.created_at
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, dbError("list returns without transition", err)
	}
	return collectReturns(rows)
}

func collectReturns(rows pgx.Rows) ([]*entity.Return, error) {
	defer rows.Close()
	list := []*entity.Return{}
	for rows.Next() {
		ret, err := scanReturn(rows)
		if err != nil {
			return nil, dbError("scan return", err)
		}
		list = append(list, ret)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("list returns", err)
	}
	return list, nil
}
