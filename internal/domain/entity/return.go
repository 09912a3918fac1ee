package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de devolución.
const (
	ReturnTypeCustomer = "customer"
	ReturnTypeSupplier = "supplier"
)

// Estados de una devolución.
const (
	ReturnStatusPending   = "pending"
	ReturnStatusCompleted = "completed"
	ReturnStatusCancelled = "cancelled"
)

// Return registra una devolución de cliente o a proveedor.
// Cada devolución queda enlazada a un StockTransition cuyo Reference es el ID de la devolución.
type Return struct {
	ID            string
	ProductID     string
	ProductName   string
	ReturnType    string // customer, supplier
	Quantity      int
	Reason        string
	Notes         string
	UnitPrice     decimal.Decimal
	TotalValue    decimal.Decimal
	PreviousStock int
	NewStock      int
	PartyName     string
	PartyID       string
	UserID        string
	UserName      string
	Status        string
	CreatedAt     time.Time
}

// TransitionKind devuelve el tipo de movimiento equivalente a la devolución.
func (r *Return) TransitionKind() TransitionKind {
	if r.ReturnType == ReturnTypeSupplier {
		return KindSupplierReturn
	}
	return KindCustomerReturn
}
