package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo del catálogo con su stock actual (InventoryItem).
// Stock solo se modifica a través del libro de movimientos (StockTransition).
type Product struct {
	ID        string
	SKU       string // código de barras o referencia externa (opcional)
	Name      string
	Category  string
	Cost      decimal.Decimal  // costo unitario
	Price     decimal.Decimal  // precio de venta unitario
	Stock     int              // nunca negativo después de un movimiento confirmado
	Discount  *decimal.Decimal // porcentaje 0-100, opcional
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SalePrice devuelve el precio de venta con el descuento aplicado, redondeado a 2 decimales.
func (p *Product) SalePrice() decimal.Decimal {
	if p.Discount == nil || p.Discount.IsZero() {
		return p.Price
	}
	hundred := decimal.NewFromInt(100)
	factor := hundred.Sub(*p.Discount).Div(hundred)
	return p.Price.Mul(factor).Round(2)
}
