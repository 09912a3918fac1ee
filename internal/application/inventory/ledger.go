package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-pos/internal/domain"
	"github.com/jhoicas/retail-pos/internal/domain/entity"
	domaininv "github.com/jhoicas/retail-pos/internal/domain/inventory"
	"github.com/jhoicas/retail-pos/internal/domain/repository"
)

// RecordInput entrada del Ledger Writer.
// Quantity es la magnitud del movimiento; para adjustment es el stock objetivo absoluto.
// UnitPrice nil toma el precio del producto (ventas y devoluciones de cliente) o su costo
// (compras y devoluciones a proveedor). Un ajuste sin precio vale 0.
type RecordInput struct {
	ProductID string
	Kind      entity.TransitionKind
	Quantity  int
	UnitPrice *decimal.Decimal
	Reference string
	Party     *entity.Party
	Notes     string
	Actor     entity.ActingUser
}

// LedgerWriter agrega movimientos inmutables al libro y actualiza el stock del producto
// en la misma transacción, con la fila del producto bloqueada (SELECT FOR UPDATE).
type LedgerWriter struct {
	txRunner TxRunner
	metrics  Metrics
	now      func() time.Time
}

// NewLedgerWriter construye el caso de uso. metrics puede ser nil.
func NewLedgerWriter(txRunner TxRunner, metrics Metrics) *LedgerWriter {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &LedgerWriter{txRunner: txRunner, metrics: metrics, now: time.Now}
}

// Record registra un movimiento: bloquea el producto, clasifica, inserta el StockTransition
// y actualiza el stock. Commit si todo ok, Rollback si algo falla.
func (w *LedgerWriter) Record(ctx context.Context, in RecordInput) (*entity.StockTransition, error) {
	var out *entity.StockTransition
	err := w.txRunner.Run(ctx, func(stores repository.Stores) error {
		t, err := w.RecordInTx(ctx, stores, in)
		if err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	w.metrics.TransitionRecorded(out.TransactionType)
	return out, nil
}

// Recorded cuenta un movimiento escrito con RecordInTx, después del commit del caller.
func (w *LedgerWriter) Recorded(t *entity.StockTransition) {
	w.metrics.TransitionRecorded(t.TransactionType)
}

// RecordInTx ejecuta el registro usando los repositorios de una transacción del caller
// (checkout, stock inicial). No confirma la transacción.
func (w *LedgerWriter) RecordInTx(ctx context.Context, stores repository.Stores, in RecordInput) (*entity.StockTransition, error) {
	if in.ProductID == "" || in.Actor.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.Party != nil && !validPartyType(in.Party.Type) {
		return nil, domain.ErrInvalidInput
	}

	product, err := stores.Products.GetForUpdate(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	newStock, err := domaininv.Classify(product.Stock, in.Kind, in.Quantity)
	if err != nil {
		w.metrics.TransitionRejected(in.Kind, rejectionReason(err))
		return nil, err
	}

	unitPrice := defaultUnitPrice(product, in.Kind, in.UnitPrice)
	magnitude := in.Quantity
	if in.Kind == entity.KindAdjustment {
		magnitude = domaininv.Magnitude(product.Stock, newStock)
	}

	t := &entity.StockTransition{
		ID:              uuid.New().String(),
		ProductID:       product.ID,
		ProductName:     product.Name,
		TransactionType: in.Kind,
		Quantity:        magnitude,
		PreviousStock:   product.Stock,
		NewStock:        newStock,
		UnitPrice:       unitPrice,
		TotalValue:      domaininv.TotalValue(in.Kind, magnitude, unitPrice),
		Reference:       in.Reference,
		Party:           in.Party,
		UserID:          in.Actor.ID,
		UserName:        in.Actor.Name,
		Notes:           in.Notes,
		CreatedAt:       w.now().UTC(),
	}
	if err := stores.Transitions.Create(ctx, t); err != nil {
		return nil, err
	}
	if err := stores.Products.UpdateStock(ctx, product.ID, newStock); err != nil {
		return nil, err
	}
	return t, nil
}

func defaultUnitPrice(p *entity.Product, kind entity.TransitionKind, given *decimal.Decimal) decimal.Decimal {
	if given != nil {
		return *given
	}
	switch kind {
	case entity.KindSale, entity.KindCustomerReturn:
		return p.Price
	case entity.KindPurchase, entity.KindSupplierReturn:
		return p.Cost
	}
	return decimal.Zero
}

func validPartyType(t string) bool {
	switch t {
	case entity.PartyCustomer, entity.PartySupplier, entity.PartySystem:
		return true
	}
	return false
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, domain.ErrInvalidTransactionType):
		return "invalid_type"
	}
	return "other"
}
