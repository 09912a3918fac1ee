// Package inventory contiene las reglas puras del libro de inventario:
// clasificación de movimientos y cálculo del stock resultante. Sin I/O.
package inventory

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-pos/internal/domain"
	"github.com/jhoicas/retail-pos/internal/domain/entity"
)

// Classify calcula el nuevo stock para un movimiento.
//
//	sale, supplier_return        -> current - quantity
//	purchase, customer_return    -> current + quantity
//	adjustment                   -> quantity (valor absoluto objetivo)
//
// Errores: ErrInvalidTransactionType, ErrInvalidQuantity, ErrInsufficientStock.
func Classify(current int, kind entity.TransitionKind, quantity int) (int, error) {
	if !kind.Valid() {
		return 0, domain.ErrInvalidTransactionType
	}
	if kind == entity.KindAdjustment {
		if quantity < 0 {
			return 0, domain.ErrInvalidQuantity
		}
		return quantity, nil
	}
	if quantity <= 0 {
		return 0, domain.ErrInvalidQuantity
	}
	next := current + SignedDelta(kind, quantity)
	if next < 0 {
		return 0, domain.ErrInsufficientStock
	}
	return next, nil
}

// SignedDelta devuelve el cambio con signo implícito en el tipo. Para adjustment devuelve 0
// porque el ajuste reemplaza el stock en lugar de sumarlo.
func SignedDelta(kind entity.TransitionKind, quantity int) int {
	switch kind {
	case entity.KindSale, entity.KindSupplierReturn:
		return -quantity
	case entity.KindPurchase, entity.KindCustomerReturn:
		return quantity
	}
	return 0
}

// ParseKind normaliza y valida un tipo recibido desde fuera.
func ParseKind(s string) (entity.TransitionKind, error) {
	k := entity.TransitionKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", domain.ErrInvalidTransactionType
	}
	return k, nil
}

// Magnitude es la cantidad realmente aplicada entre dos niveles de stock.
func Magnitude(previous, next int) int {
	if next < previous {
		return previous - next
	}
	return next - previous
}

// TotalValue = magnitude x unitPrice. Un ajuste sin precio vale 0.
func TotalValue(kind entity.TransitionKind, magnitude int, unitPrice decimal.Decimal) decimal.Decimal {
	if kind == entity.KindAdjustment && unitPrice.IsZero() {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(magnitude)).Mul(unitPrice)
}
