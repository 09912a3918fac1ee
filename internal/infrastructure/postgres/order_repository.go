package postgres

import (
	"context"

	"github.com/jhoicas/retail-pos/internal/domain/entity"
	"github.com/jhoicas/retail-pos/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo órdenes de venta sobre PostgreSQL (cabecera + líneas).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta la orden y sus líneas. Debe ejecutarse dentro de la transacción del checkout.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO orders (id, customer_id, customer_name, payment_method, subtotal, discount, total, user_id, user_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		o.ID, o.CustomerID, o.CustomerName, o.PaymentMethod, o.Subtotal, o.Discount, o.Total,
		o.UserID, o.UserName, o.CreatedAt,
	)
	if err != nil {
		return dbError("insert order", err)
	}
	for _, l := range o.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_lines (id, order_id, product_id, product_name, quantity, unit_price, line_total, transition_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			l.ID, o.ID, l.ProductID, l.ProductName, l.Quantity, l.UnitPrice, l.LineTotal, l.TransitionID,
		)
		if err != nil {
			return dbError("insert order line", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus líneas.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var o entity.Order
	err := r.q.QueryRow(ctx, `
		SELECT id, customer_id, customer_name, payment_method, subtotal, discount, total, user_id, user_name, created_at
		FROM orders WHERE id = $1`, id).Scan(
		&o.ID, &o.CustomerID, &o.CustomerName, &o.PaymentMethod, &o.Subtotal, &o.Discount, &o.Total,
		&o.UserID, &o.UserName, &o.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, dbError("get order", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, unit_price, line_total, transition_id
		FROM order_lines WHERE order_id = $1 ORDER BY product_name, id`, id)
	if err != nil {
		return nil, dbError("list order lines", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.ProductName, &l.Quantity, &l.UnitPrice,
			&l.LineTotal, &l.TransitionID); err != nil {
			return nil, dbError("scan order line", err)
		}
		o.Lines = append(o.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("list order lines", err)
	}
	return &o, nil
}
