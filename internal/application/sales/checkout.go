// Package sales implementa el checkout del punto de venta sobre el libro de inventario.
package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-pos/internal/application/dto"
	"github.com/jhoicas/retail-pos/internal/application/inventory"
	"github.com/jhoicas/retail-pos/internal/domain"
	"github.com/jhoicas/retail-pos/internal/domain/entity"
	"github.com/jhoicas/retail-pos/internal/domain/repository"
)

// WalkInCustomer nombre de la contraparte cuando la venta no identifica cliente.
const WalkInCustomer = "cliente de mostrador"

// CheckoutUseCase confirma ventas: cada línea genera un movimiento "sale" y todo se confirma
// en una sola transacción. Si una línea falla la orden completa se revierte.
type CheckoutUseCase struct {
	txRunner inventory.TxRunner
	ledger   *inventory.LedgerWriter
	orders   repository.OrderRepository
	metrics  inventory.Metrics
	now      func() time.Time
}

// NewCheckoutUseCase construye el caso de uso. orders se usa para lecturas fuera de la tx.
func NewCheckoutUseCase(txRunner inventory.TxRunner, ledger *inventory.LedgerWriter, orders repository.OrderRepository, metrics inventory.Metrics) *CheckoutUseCase {
	return &CheckoutUseCase{txRunner: txRunner, ledger: ledger, orders: orders, metrics: metrics, now: time.Now}
}

// Checkout registra la orden y descuenta el stock de cada línea.
// Las líneas repetidas del mismo producto se registran como movimientos separados.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, actor entity.ActingUser, in dto.CheckoutRequest) (*dto.OrderResponse, error) {
	if actor.ID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.ProductID == "" {
			return nil, domain.ErrInvalidInput
		}
		if it.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
	}

	order := &entity.Order{
		ID:            uuid.New().String(),
		CustomerID:    in.CustomerID,
		CustomerName:  in.CustomerName,
		PaymentMethod: in.PaymentMethod,
		UserID:        actor.ID,
		UserName:      actor.Name,
		CreatedAt:     uc.now().UTC(),
	}
	party := &entity.Party{Type: entity.PartyCustomer, Name: in.CustomerName, ID: in.CustomerID}
	if in.CustomerName == "" && in.CustomerID == "" {
		party = &entity.Party{Type: entity.PartySystem, Name: WalkInCustomer}
	}

	var kinds []entity.TransitionKind
	err := uc.txRunner.Run(ctx, func(stores repository.Stores) error {
		order.Lines = order.Lines[:0]
		kinds = kinds[:0]
		subtotal, discount := decimal.Zero, decimal.Zero
		for i, it := range in.Items {
			product, err := stores.Products.GetForUpdate(ctx, it.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("línea %d: %w", i+1, domain.ErrNotFound)
			}
			qty := decimal.NewFromInt(int64(it.Quantity))
			unit := product.SalePrice()
			t, err := uc.ledger.RecordInTx(ctx, stores, inventory.RecordInput{
				ProductID: product.ID,
				Kind:      entity.KindSale,
				Quantity:  it.Quantity,
				UnitPrice: &unit,
				Reference: order.ID,
				Party:     party,
				Actor:     actor,
			})
			if err != nil {
				return fmt.Errorf("línea %d: %w", i+1, err)
			}
			kinds = append(kinds, t.TransactionType)
			lineTotal := unit.Mul(qty)
			subtotal = subtotal.Add(product.Price.Mul(qty))
			discount = discount.Add(product.Price.Sub(unit).Mul(qty))
			order.Lines = append(order.Lines, entity.OrderLine{
				ID:           uuid.New().String(),
				OrderID:      order.ID,
				ProductID:    product.ID,
				ProductName:  product.Name,
				Quantity:     it.Quantity,
				UnitPrice:    unit,
				LineTotal:    lineTotal,
				TransitionID: t.ID,
			})
		}
		order.Subtotal = subtotal
		order.Discount = discount
		order.Total = subtotal.Sub(discount)
		return stores.Orders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	if uc.metrics != nil {
		for _, k := range kinds {
			uc.metrics.TransitionRecorded(k)
		}
	}
	return dto.OrderFromEntity(order), nil
}

// Get obtiene una orden con sus líneas.
func (uc *CheckoutUseCase) Get(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return dto.OrderFromEntity(o), nil
}
