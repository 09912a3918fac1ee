package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-pos/internal/application/dto"
	"github.com/jhoicas/retail-pos/internal/application/inventory"
	"github.com/jhoicas/retail-pos/internal/application/usecase"
	"github.com/jhoicas/retail-pos/internal/domain"
	"github.com/jhoicas/retail-pos/internal/domain/entity"
	"github.com/jhoicas/retail-pos/internal/domain/repository"
	"github.com/jhoicas/retail-pos/internal/infrastructure/memory"
)

var gerente = entity.ActingUser{ID: "u-9", Name: "Marta Gerente"}

func newProductUseCase(s *memory.Store) *usecase.ProductUseCase {
	runner := memory.NewTxRunner(s)
	return usecase.NewProductUseCase(s.Products(), s.Transitions(), runner, inventory.NewLedgerWriter(runner, nil))
}

func TestProductCreate_StockInicialPorLibro(t *testing.T) {
	s := memory.NewStore()
	uc := newProductUseCase(s)
	ctx := context.Background()
	discount := decimal.NewFromInt(10)

	p, err := uc.Create(ctx, gerente, dto.CreateProductRequest{
		SKU: "7701234", Name: "Arroz 1kg", Category: "granos",
		Cost: decimal.RequireFromString("2.00"), Price: decimal.RequireFromString("3.50"),
		Discount: &discount, InitialStock: 40,
	})
	require.NoError(t, err)
	assert.Equal(t, 40, p.Stock)
	assert.True(t, p.SalePrice.Equal(decimal.RequireFromString("3.15")))

	ledger, total, err := s.Transitions().List(ctx, repository.TransitionFilter{ProductID: p.ID}, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, entity.KindAdjustment, ledger[0].TransactionType)
	assert.Equal(t, 0, ledger[0].PreviousStock)
	assert.Equal(t, 40, ledger[0].NewStock)
	assert.Equal(t, "Marta Gerente", ledger[0].UserName)

	_, err = uc.Create(ctx, gerente, dto.CreateProductRequest{SKU: "7701234", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_Validaciones(t *testing.T) {
	uc := newProductUseCase(memory.NewStore())
	ctx := context.Background()

	_, err := uc.Create(ctx, gerente, dto.CreateProductRequest{Name: "X", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	over := decimal.NewFromInt(120)
	_, err = uc.Create(ctx, gerente, dto.CreateProductRequest{Name: "X", Discount: &over})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, gerente, dto.CreateProductRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_NoTocaStock(t *testing.T) {
	s := memory.NewStore()
	uc := newProductUseCase(s)
	ctx := context.Background()
	p, err := uc.Create(ctx, gerente, dto.CreateProductRequest{Name: "Leche", InitialStock: 12})
	require.NoError(t, err)

	name := "Leche entera 1L"
	price := decimal.RequireFromString("1.80")
	updated, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: &name, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, 12, updated.Stock)

	_, err = uc.Update(ctx, "no-existe", dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductDelete_ConHistorialEsConflicto(t *testing.T) {
	s := memory.NewStore()
	uc := newProductUseCase(s)
	ctx := context.Background()

	conStock, err := uc.Create(ctx, gerente, dto.CreateProductRequest{Name: "Azúcar", InitialStock: 5})
	require.NoError(t, err)
	assert.ErrorIs(t, uc.Delete(ctx, conStock.ID), domain.ErrConflict)

	sinStock, err := uc.Create(ctx, gerente, dto.CreateProductRequest{Name: "Sal"})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, sinStock.ID))
	_, err = uc.GetByID(ctx, sinStock.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductList_FiltraYPagina(t *testing.T) {
	s := memory.NewStore()
	uc := newProductUseCase(s)
	ctx := context.Background()
	for _, n := range []string{"Arroz", "Avena", "Café", "Cacao"} {
		cat := "granos"
		if n == "Café" || n == "Cacao" {
			cat = "bebidas"
		}
		_, err := uc.Create(ctx, gerente, dto.CreateProductRequest{Name: n, Category: cat})
		require.NoError(t, err)
	}

	res, err := uc.List(ctx, repository.ProductFilter{Category: "bebidas"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Cacao", res.Items[0].Name)

	res, err = uc.List(ctx, repository.ProductFilter{Search: "av"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Avena", res.Items[0].Name)

	res, err = uc.List(ctx, repository.ProductFilter{}, 2, 3)
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, 2, res.Pagination.Pages)
	assert.Equal(t, 4, res.Pagination.Total)
}

// recordedKinds cuenta los movimientos confirmados por tipo.
type recordedKinds map[entity.TransitionKind]int

func (m recordedKinds) TransitionRecorded(k entity.TransitionKind) { m[k]++ }
func (recordedKinds) TransitionRejected(entity.TransitionKind, string) {}
func (recordedKinds) ReturnAuditFailed() {}
func (recordedKinds) TransitionsReconciled(int) {}

func TestProductCreate_StockInicialCuentaEnMetricas(t *testing.T) {
	s := memory.NewStore()
	runner := memory.NewTxRunner(s)
	counts := recordedKinds{}
	uc := usecase.NewProductUseCase(s.Products(), s.Transitions(), runner, inventory.NewLedgerWriter(runner, counts))
	ctx := context.Background()

	_, err := uc.Create(ctx, gerente, dto.CreateProductRequest{Name: "Lentejas", InitialStock: 8})
	require.NoError(t, err)
	assert.Equal(t, 1, counts[entity.KindAdjustment])

	_, err = uc.Create(ctx, gerente, dto.CreateProductRequest{Name: "Garbanzos"})
	require.NoError(t, err)
	assert.Equal(t, 1, counts[entity.KindAdjustment], "sin stock inicial no hay movimiento")

	_, err = uc.Create(ctx, gerente, dto.CreateProductRequest{Name: "Maíz", InitialStock: 3, Cost: decimal.NewFromInt(-1)})
	require.Error(t, err)
	assert.Equal(t, 1, counts[entity.KindAdjustment], "una creación rechazada no cuenta")
}
