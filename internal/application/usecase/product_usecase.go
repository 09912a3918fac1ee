package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-pos/internal/application/dto"
	"github.com/jhoicas/retail-pos/internal/application/inventory"
	"github.com/jhoicas/retail-pos/internal/domain"
	"github.com/jhoicas/retail-pos/internal/domain/entity"
	"github.com/jhoicas/retail-pos/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// ProductUseCase casos de uso del catálogo. El stock solo cambia a través del libro.
type ProductUseCase struct {
	repo        repository.ProductRepository
	transitions repository.StockTransitionRepository
	txRunner    inventory.TxRunner
	ledger      *inventory.LedgerWriter
	limits      inventory.PageLimits
	now         func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	transitions repository.StockTransitionRepository,
	txRunner inventory.TxRunner,
	ledger *inventory.LedgerWriter,
) *ProductUseCase {
	return &ProductUseCase{
		repo:        repo,
		transitions: transitions,
		txRunner:    txRunner,
		ledger:      ledger,
		limits:      inventory.DefaultPageLimits(),
		now:         time.Now,
	}
}

// WithLimits reemplaza los límites de paginación del listado.
func (uc *ProductUseCase) WithLimits(l inventory.PageLimits) *ProductUseCase {
	uc.limits = l
	return uc
}

func validPrices(cost, price decimal.Decimal, discount *decimal.Decimal) bool {
	if cost.IsNegative() || price.IsNegative() {
		return false
	}
	if discount != nil && (discount.IsNegative() || discount.GreaterThan(hundred)) {
		return false
	}
	return true
}

// Create crea un producto. Si InitialStock > 0 se registra un ajuste en la misma transacción.
func (uc *ProductUseCase) Create(ctx context.Context, actor entity.ActingUser, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	if strings.TrimSpace(in.Name) == "" || in.InitialStock < 0 || !validPrices(in.Cost, in.Price, in.Discount) {
		return nil, domain.ErrInvalidInput
	}
	if in.SKU != "" {
		existing, err := uc.repo.GetBySKU(ctx, in.SKU)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}

	now := uc.now().UTC()
	product := &entity.Product{
		ID:        uuid.New().String(),
		SKU:       in.SKU,
		Name:      strings.TrimSpace(in.Name),
		Category:  strings.TrimSpace(in.Category),
		Cost:      in.Cost,
		Price:     in.Price,
		Discount:  in.Discount,
		CreatedAt: now,
		UpdatedAt: now,
	}
	var initial *entity.StockTransition
	err := uc.txRunner.Run(ctx, func(stores repository.Stores) error {
		if err := stores.Products.Create(ctx, product); err != nil {
			return err
		}
		if in.InitialStock == 0 {
			return nil
		}
		t, err := uc.ledger.RecordInTx(ctx, stores, inventory.RecordInput{
			ProductID: product.ID,
			Kind:      entity.KindAdjustment,
			Quantity:  in.InitialStock,
			UnitPrice: &product.Cost,
			Party:     &entity.Party{Type: entity.PartySystem, Name: "alta de producto"},
			Notes:     "stock inicial",
			Actor:     actor,
		})
		if err != nil {
			return err
		}
		product.Stock = t.NewStock
		initial = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	if initial != nil {
		uc.ledger.Recorded(initial)
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza atributos de catálogo. No permite modificar Stock (se maneja vía movimientos).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.SKU != nil {
		product.SKU = strings.TrimSpace(*in.SKU)
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.Cost != nil {
		product.Cost = *in.Cost
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Discount != nil {
		product.Discount = in.Discount
		if in.Discount.IsZero() {
			product.Discount = nil
		}
	}
	if product.Name == "" || !validPrices(product.Cost, product.Price, product.Discount) {
		return nil, domain.ErrInvalidInput
	}
	product.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con filtros y paginación.
func (uc *ProductUseCase) List(ctx context.Context, filter repository.ProductFilter, page, limit int) (*dto.ProductListResponse, error) {
	pg := uc.limits.Paginate(page, limit, 0)
	list, total, err := uc.repo.List(ctx, filter, pg.Limit, pg.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items:      items,
		Pagination: dto.PaginationFrom(uc.limits.Paginate(pg.Page, pg.Limit, total)),
	}, nil
}

// Delete elimina un producto sin historial. Con movimientos en el libro devuelve ErrConflict.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	n, err := uc.transitions.CountByProduct(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("producto con %d movimientos: %w", n, domain.ErrConflict)
	}
	return uc.repo.Delete(ctx, id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		Category:  p.Category,
		Cost:      p.Cost,
		Price:     p.Price,
		Discount:  p.Discount,
		SalePrice: p.SalePrice(),
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
