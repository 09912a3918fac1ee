package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-pos/internal/application/inventory"
	"github.com/jhoicas/retail-pos/internal/domain"
	"github.com/jhoicas/retail-pos/internal/domain/entity"
	"github.com/jhoicas/retail-pos/internal/domain/repository"
	"github.com/jhoicas/retail-pos/internal/infrastructure/memory"
)

// failingTransitions simula un fallo del almacén al escribir el movimiento de auditoría.
type failingTransitions struct {
	repository.StockTransitionRepository
}

func (failingTransitions) Create(context.Context, *entity.StockTransition) error {
	return domain.NewPersistenceError("insert stock transition", errors.New("connection reset"))
}

func newProcessor(s *memory.Store, transitions repository.StockTransitionRepository, m inventory.Metrics) *inventory.ReturnProcessor {
	return inventory.NewReturnProcessor(memory.NewTxRunner(s), transitions, s.Returns(), m, nil)
}

// Escenario C: stock 5, devolución de cliente de 2 -> 7, devolución y movimiento enlazados.
func TestProcessReturn_ClienteEnlazaMovimiento(t *testing.T) {
	s := newStoreWithProduct(t, 5)
	p := newProcessor(s, s.Transitions(), nil)

	res, err := p.Process(context.Background(), inventory.ReturnInput{
		ProductID: "p-1", ReturnType: entity.ReturnTypeCustomer, Quantity: 2,
		Reason: "empaque dañado", Actor: cajero, PartyName: "Luis Pérez",
	})
	require.NoError(t, err)

	assert.Equal(t, 7, res.NewStock)
	assert.Equal(t, entity.ReturnTypeCustomer, res.Return.ReturnType)
	assert.Equal(t, 5, res.Return.PreviousStock)
	assert.Equal(t, 7, res.Return.NewStock)
	assert.Equal(t, entity.ReturnStatusCompleted, res.Return.Status)
	assert.Equal(t, "Café molido 500g", res.Return.ProductName)
	assert.Equal(t, "Ana Cajera", res.Return.UserName)
	assert.True(t, res.Return.UnitPrice.Equal(decimal.RequireFromString("6.50")))
	assert.True(t, res.Return.TotalValue.Equal(decimal.RequireFromString("13")))
	assert.Equal(t, 7, stockOf(t, s))

	ledger := ledgerOf(t, s)
	require.Len(t, ledger, 1)
	tr := ledger[0]
	assert.Equal(t, entity.KindCustomerReturn, tr.TransactionType)
	assert.Equal(t, 2, tr.Quantity)
	assert.Equal(t, 5, tr.PreviousStock)
	assert.Equal(t, 7, tr.NewStock)
	assert.Equal(t, res.Return.ID, tr.Reference)
	require.NotNil(t, tr.Party)
	assert.Equal(t, entity.PartyCustomer, tr.Party.Type)
}

func TestProcessReturn_ProveedorValidaStock(t *testing.T) {
	s := newStoreWithProduct(t, 5)
	p := newProcessor(s, s.Transitions(), nil)
	ctx := context.Background()

	_, err := p.Process(ctx, inventory.ReturnInput{
		ProductID: "p-1", ReturnType: entity.ReturnTypeSupplier, Quantity: 6, Reason: "lote vencido", Actor: cajero,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, stockOf(t, s))

	res, err := p.Process(ctx, inventory.ReturnInput{
		ProductID: "p-1", ReturnType: entity.ReturnTypeSupplier, Quantity: 5, Reason: "lote vencido", Actor: cajero,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.NewStock)
	assert.True(t, res.Return.UnitPrice.Equal(decimal.RequireFromString("4.00")), "a proveedor se valora al costo")

	ledger := ledgerOf(t, s)
	require.Len(t, ledger, 1)
	assert.Equal(t, entity.KindSupplierReturn, ledger[0].TransactionType)
}

func TestProcessReturn_Validaciones(t *testing.T) {
	s := newStoreWithProduct(t, 5)
	p := newProcessor(s, s.Transitions(), nil)
	ctx := context.Background()

	_, err := p.Process(ctx, inventory.ReturnInput{ProductID: "otro", ReturnType: entity.ReturnTypeCustomer, Quantity: 1, Reason: "x", Actor: cajero})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = p.Process(ctx, inventory.ReturnInput{ProductID: "p-1", ReturnType: entity.ReturnTypeCustomer, Quantity: 0, Reason: "x", Actor: cajero})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = p.Process(ctx, inventory.ReturnInput{ProductID: "p-1", ReturnType: entity.ReturnTypeCustomer, Quantity: 1, Actor: cajero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el motivo es obligatorio")

	_, err = p.Process(ctx, inventory.ReturnInput{ProductID: "p-1", ReturnType: "warehouse", Quantity: 1, Reason: "x", Actor: cajero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	page, err := p.List(ctx, repository.ReturnFilter{}, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, page.Pagination.Total)
}

// Si falla la escritura secundaria, la devolución y el stock se mantienen.
func TestProcessReturn_FalloDeAuditoriaNoRevierte(t *testing.T) {
	s := newStoreWithProduct(t, 5)
	metrics := newCountingMetrics()
	p := newProcessor(s, failingTransitions{s.Transitions()}, metrics)

	res, err := p.Process(context.Background(), inventory.ReturnInput{
		ProductID: "p-1", ReturnType: entity.ReturnTypeCustomer, Quantity: 2, Reason: "talla incorrecta", Actor: cajero,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, res.NewStock)
	assert.Equal(t, 7, stockOf(t, s))
	assert.Empty(t, ledgerOf(t, s))
	assert.Equal(t, 1, metrics.auditFailed)

	stored, err := p.Get(context.Background(), res.Return.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReturnStatusCompleted, stored.Status)

	// El job de reconciliación repara el movimiento faltante.
	rec := inventory.NewReconciler(s.Transitions(), s.Returns(), metrics, nil)
	n, err := rec.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, metrics.reconciled)

	ledger := ledgerOf(t, s)
	require.Len(t, ledger, 1)
	assert.Equal(t, res.Return.ID, ledger[0].Reference)
	assert.Equal(t, 5, ledger[0].PreviousStock)
	assert.Equal(t, 7, ledger[0].NewStock)

	n, err = rec.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n, "una segunda pasada no duplica")
}

func TestReturnGet_NoEncontrada(t *testing.T) {
	s := newStoreWithProduct(t, 5)
	p := newProcessor(s, s.Transitions(), nil)
	_, err := p.Get(context.Background(), "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// reconcileFirst ejecuta la reconciliación justo antes del insert de auditoría, como si
// el job corriera entre el commit de la devolución y la escritura secundaria.
type reconcileFirst struct {
	repository.StockTransitionRepository
	rec *inventory.Reconciler
	t   *testing.T
}

func (r reconcileFirst) Create(ctx context.Context, tr *entity.StockTransition) error {
	n, err := r.rec.Run(ctx)
	require.NoError(r.t, err)
	require.Equal(r.t, 1, n)
	return r.StockTransitionRepository.Create(ctx, tr)
}

func TestProcessReturn_ReconciliacionConcurrenteNoDuplica(t *testing.T) {
	s := newStoreWithProduct(t, 5)
	metrics := newCountingMetrics()
	rec := inventory.NewReconciler(s.Transitions(), s.Returns(), metrics, nil)
	p := newProcessor(s, reconcileFirst{StockTransitionRepository: s.Transitions(), rec: rec, t: t}, metrics)

	res, err := p.Process(context.Background(), inventory.ReturnInput{
		ProductID: "p-1", ReturnType: entity.ReturnTypeCustomer, Quantity: 2, Reason: "color equivocado", Actor: cajero,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, res.NewStock)

	ledger := ledgerOf(t, s)
	require.Len(t, ledger, 1, "una devolución produce un solo movimiento enlazado")
	assert.Equal(t, res.Return.ID, ledger[0].Reference)
	assert.Equal(t, inventory.ReturnTransitionID(res.Return.ID), ledger[0].ID)
	assert.Zero(t, metrics.auditFailed, "el movimiento ya existente no es un fallo")
	assert.Equal(t, 1, metrics.reconciled)
}
