package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order representa una venta confirmada en caja.
type Order struct {
	ID            string
	CustomerID    string
	CustomerName  string
	PaymentMethod string // cash, card, transfer
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
	UserID        string
	UserName      string
	CreatedAt     time.Time
	Lines         []OrderLine
}

// OrderLine línea de una orden; cada una genera un movimiento "sale".
type OrderLine struct {
	ID           string
	OrderID      string
	ProductID    string
	ProductName  string
	Quantity     int
	UnitPrice    decimal.Decimal // precio ya con descuento
	LineTotal    decimal.Decimal
	TransitionID string
}
