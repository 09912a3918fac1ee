package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-pos/internal/domain/entity"
)

// CheckoutItem línea solicitada en caja.
type CheckoutItem struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// CheckoutRequest body para POST /api/orders.
type CheckoutRequest struct {
	CustomerID    string         `json:"customer_id,omitempty" validate:"omitempty,max=100"`
	CustomerName  string         `json:"customer_name,omitempty" validate:"omitempty,max=200"`
	PaymentMethod string         `json:"payment_method" validate:"required,oneof=cash card transfer"`
	Items         []CheckoutItem `json:"items" validate:"required,min=1,max=200,dive"`
}

// OrderLineResponse línea de una orden.
type OrderLineResponse struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineTotal    decimal.Decimal `json:"line_total"`
	TransitionID string          `json:"transition_id"`
}

// OrderResponse una orden confirmada.
type OrderResponse struct {
	ID            string              `json:"id"`
	CustomerID    string              `json:"customer_id,omitempty"`
	CustomerName  string              `json:"customer_name,omitempty"`
	PaymentMethod string              `json:"payment_method"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	Discount      decimal.Decimal     `json:"discount"`
	Total         decimal.Decimal     `json:"total"`
	UserID        string              `json:"user_id"`
	UserName      string              `json:"user_name"`
	CreatedAt     time.Time           `json:"created_at"`
	Lines         []OrderLineResponse `json:"lines"`
}

// OrderFromEntity mapea la orden a JSON.
func OrderFromEntity(o *entity.Order) *OrderResponse {
	out := &OrderResponse{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		CustomerName:  o.CustomerName,
		PaymentMethod: o.PaymentMethod,
		Subtotal:      o.Subtotal,
		Discount:      o.Discount,
		Total:         o.Total,
		UserID:        o.UserID,
		UserName:      o.UserName,
		CreatedAt:     o.CreatedAt,
		Lines:         make([]OrderLineResponse, 0, len(o.Lines)),
	}
	for _, l := range o.Lines {
		out.Lines = append(out.Lines, OrderLineResponse{
			ProductID:    l.ProductID,
			ProductName:  l.ProductName,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
			LineTotal:    l.LineTotal,
			TransitionID: l.TransitionID,
		})
	}
	return out
}
