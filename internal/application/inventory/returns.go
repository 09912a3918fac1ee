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
	"github.com/jhoicas/retail-pos/pkg/logger"
)

// ReturnInput entrada para procesar una devolución.
type ReturnInput struct {
	ProductID  string
	ReturnType string // customer, supplier
	Quantity   int
	Reason     string
	Notes      string
	PartyName  string
	PartyID    string
	Actor      entity.ActingUser
}

// ReturnResult devolución persistida y stock resultante.
type ReturnResult struct {
	Return   *entity.Return
	NewStock int
}

// ReturnProcessor registra devoluciones de cliente y a proveedor.
// La devolución y el stock se confirman juntos; el movimiento de auditoría enlazado se
// escribe después y su fallo se registra sin revertir la devolución (ver Reconciler).
type ReturnProcessor struct {
	txRunner    TxRunner
	transitions repository.StockTransitionRepository
	returns     repository.ReturnRepository
	metrics     Metrics
	log         *logger.Logger
	limits      PageLimits
	now         func() time.Time
}

// NewReturnProcessor construye el caso de uso. transitions y returns deben estar atados al
// pool (fuera de la transacción principal).
func NewReturnProcessor(
	txRunner TxRunner,
	transitions repository.StockTransitionRepository,
	returns repository.ReturnRepository,
	metrics Metrics,
	log *logger.Logger,
) *ReturnProcessor {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ReturnProcessor{
		txRunner:    txRunner,
		transitions: transitions,
		returns:     returns,
		metrics:     metrics,
		log:         log.Module("returns"),
		limits:      DefaultPageLimits(),
		now:         time.Now,
	}
}

// WithLimits reemplaza los límites de paginación del listado.
func (p *ReturnProcessor) WithLimits(l PageLimits) *ReturnProcessor {
	p.limits = l
	return p
}

// Process valida, persiste la devolución (status completed), aplica el stock y luego intenta
// agregar el StockTransition enlazado (Reference = ID de la devolución).
func (p *ReturnProcessor) Process(ctx context.Context, in ReturnInput) (*ReturnResult, error) {
	if in.ProductID == "" || in.Reason == "" || in.Actor.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ReturnType != entity.ReturnTypeCustomer && in.ReturnType != entity.ReturnTypeSupplier {
		return nil, domain.ErrInvalidInput
	}

	var ret *entity.Return
	err := p.txRunner.Run(ctx, func(stores repository.Stores) error {
		product, err := stores.Products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if in.Quantity <= 0 {
			return domain.ErrInvalidQuantity
		}
		if in.ReturnType == entity.ReturnTypeSupplier && in.Quantity > product.Stock {
			return domain.ErrInsufficientStock
		}

		r := &entity.Return{
			ID:            uuid.New().String(),
			ProductID:     product.ID,
			ProductName:   product.Name,
			ReturnType:    in.ReturnType,
			Quantity:      in.Quantity,
			Reason:        in.Reason,
			Notes:         in.Notes,
			PreviousStock: product.Stock,
			PartyName:     in.PartyName,
			PartyID:       in.PartyID,
			UserID:        in.Actor.ID,
			UserName:      in.Actor.Name,
			Status:        entity.ReturnStatusCompleted,
			CreatedAt:     p.now().UTC(),
		}
		newStock, err := domaininv.Classify(product.Stock, r.TransitionKind(), in.Quantity)
		if err != nil {
			return err
		}
		r.NewStock = newStock
		// Devolución a proveedor se valora al costo; de cliente al precio de venta.
		r.UnitPrice = product.Price
		if in.ReturnType == entity.ReturnTypeSupplier {
			r.UnitPrice = product.Cost
		}
		r.TotalValue = decimal.NewFromInt(int64(in.Quantity)).Mul(r.UnitPrice)

		if err := stores.Returns.Create(ctx, r); err != nil {
			return err
		}
		if err := stores.Products.UpdateStock(ctx, product.ID, newStock); err != nil {
			return err
		}
		ret = r
		return nil
	})
	if err != nil {
		if in.ReturnType == entity.ReturnTypeSupplier {
			p.metrics.TransitionRejected(entity.KindSupplierReturn, rejectionReason(err))
		} else {
			p.metrics.TransitionRejected(entity.KindCustomerReturn, rejectionReason(err))
		}
		return nil, err
	}

	switch err := p.transitions.Create(ctx, TransitionFromReturn(ret)); {
	case errors.Is(err, domain.ErrDuplicate):
		// La reconciliación ya escribió el movimiento enlazado.
	case err != nil:
		p.metrics.ReturnAuditFailed()
		p.log.Warn().Err(err).
			Str("return_id", ret.ID).
			Str("product_id", ret.ProductID).
			Msg("devolución registrada sin movimiento de auditoría")
	default:
		p.metrics.TransitionRecorded(ret.TransitionKind())
	}

	return &ReturnResult{Return: ret, NewStock: ret.NewStock}, nil
}

// Get obtiene una devolución por ID.
func (p *ReturnProcessor) Get(ctx context.Context, id string) (*entity.Return, error) {
	r, err := p.returns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

// ReturnPage página de devoluciones.
type ReturnPage struct {
	Returns    []*entity.Return
	Pagination Pagination
}

// List lista devoluciones, más recientes primero.
func (p *ReturnProcessor) List(ctx context.Context, filter repository.ReturnFilter, page, limit int) (*ReturnPage, error) {
	pg := p.limits.Paginate(page, limit, 0)
	list, total, err := p.returns.List(ctx, filter, pg.Limit, pg.Offset())
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*entity.Return{}
	}
	return &ReturnPage{Returns: list, Pagination: p.limits.Paginate(pg.Page, pg.Limit, total)}, nil
}

// returnLinkSpace espacio de nombres de los IDs de movimientos enlazados a devoluciones.
var returnLinkSpace = uuid.MustParse("6f1c2a4e-8b0d-4c5e-9a7f-3d2b1e0c9f84")

// ReturnTransitionID ID determinista del movimiento enlazado a la devolución returnID.
func ReturnTransitionID(returnID string) string {
	return uuid.NewSHA1(returnLinkSpace, []byte(returnID)).String()
}

// TransitionFromReturn construye el movimiento de auditoría enlazado a una devolución.
// El ID se deriva del ID de la devolución, así dos escritores no pueden duplicarlo.
func TransitionFromReturn(r *entity.Return) *entity.StockTransition {
	party := &entity.Party{Type: r.ReturnType, Name: r.PartyName, ID: r.PartyID}
	return &entity.StockTransition{
		ID:              ReturnTransitionID(r.ID),
		ProductID:       r.ProductID,
		ProductName:     r.ProductName,
		TransactionType: r.TransitionKind(),
		Quantity:        r.Quantity,
		PreviousStock:   r.PreviousStock,
		NewStock:        r.NewStock,
		UnitPrice:       r.UnitPrice,
		TotalValue:      r.TotalValue,
		Reference:       r.ID,
		Party:           party,
		UserID:          r.UserID,
		UserName:        r.UserName,
		Notes:           r.Reason,
		CreatedAt:       r.CreatedAt,
	}
}
