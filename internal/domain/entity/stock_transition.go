package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransitionKind clasifica un evento que afecta el stock.
type TransitionKind string

// Tipos de movimiento del libro de inventario.
const (
	KindSale           TransitionKind = "sale"            // salida
	KindPurchase       TransitionKind = "purchase"        // entrada
	KindCustomerReturn TransitionKind = "customer_return" // entrada
	KindSupplierReturn TransitionKind = "supplier_return" // salida
	KindAdjustment     TransitionKind = "adjustment"      // valor absoluto
)

// Kinds lista los tipos válidos en orden estable.
var Kinds = []TransitionKind{KindSale, KindPurchase, KindCustomerReturn, KindSupplierReturn, KindAdjustment}

// Valid indica si k es uno de los tipos conocidos.
func (k TransitionKind) Valid() bool {
	switch k {
	case KindSale, KindPurchase, KindCustomerReturn, KindSupplierReturn, KindAdjustment:
		return true
	}
	return false
}

// Tipos de contraparte.
const (
	PartyCustomer = "customer"
	PartySupplier = "supplier"
	PartySystem   = "system"
)

// Party describe la entidad externa asociada a un movimiento.
type Party struct {
	Name string
	Type string // customer, supplier, system
	ID   string
}

// StockTransition es una entrada inmutable del libro de inventario.
// NewStock = PreviousStock + delta(TransactionType, Quantity), salvo adjustment (valor absoluto).
type StockTransition struct {
	ID              string
	ProductID       string
	ProductName     string // snapshot al momento de escribir
	TransactionType TransitionKind
	Quantity        int // magnitud, nunca negativa
	PreviousStock   int
	NewStock        int
	UnitPrice       decimal.Decimal
	TotalValue      decimal.Decimal
	Reference       string // id de orden, devolución, etc.
	Party           *Party
	UserID          string
	UserName        string
	Notes           string
	CreatedAt       time.Time
}
