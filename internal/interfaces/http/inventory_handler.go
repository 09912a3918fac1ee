package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-pos/internal/application/dto"
	"github.com/jhoicas/retail-pos/internal/application/inventory"
	"github.com/jhoicas/retail-pos/internal/domain"
	"github.com/jhoicas/retail-pos/internal/domain/entity"
	domaininv "github.com/jhoicas/retail-pos/internal/domain/inventory"
	"github.com/jhoicas/retail-pos/internal/domain/repository"
	"github.com/jhoicas/retail-pos/pkg/logger"
)

// InventoryHandler maneja el libro de inventario (protegido).
type InventoryHandler struct {
	ledger     *inventory.LedgerWriter
	query      *inventory.LedgerQuery
	reporter   *inventory.LedgerReporter
	reconciler *inventory.Reconciler
	log        *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	ledger *inventory.LedgerWriter,
	query *inventory.LedgerQuery,
	reporter *inventory.LedgerReporter,
	reconciler *inventory.Reconciler,
	log *logger.Logger,
) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, query: query, reporter: reporter, reconciler: reconciler, log: log}
}

// CreateTransition godoc
// @Summary      Registrar movimiento de inventario
// @Description  sale y supplier_return restan, purchase y customer_return suman.
// @Description  adjustment fija el stock en quantity (solo admin o manager).
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransitionRequest  true  "product_id, transaction_type, quantity"
// @Success      201   {object}  dto.TransitionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transitions [post]
func (h *InventoryHandler) CreateTransition(c *fiber.Ctx) error {
	var in dto.CreateTransitionRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	kind, err := domaininv.ParseKind(in.TransactionType)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if kind == entity.KindAdjustment {
		role := GetRole(c)
		if role != entity.RoleAdmin && role != entity.RoleManager {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo admin o manager pueden ajustar stock"})
		}
	}
	rec := inventory.RecordInput{
		ProductID: in.ProductID,
		Kind:      kind,
		Quantity:  *in.Quantity,
		UnitPrice: in.UnitPrice,
		Reference: in.Reference,
		Notes:     in.Notes,
		Actor:     ActorFrom(c),
	}
	if in.Party != nil {
		rec.Party = &entity.Party{Name: in.Party.Name, Type: in.Party.Type, ID: in.Party.ID}
	}
	t, err := h.ledger.Record(c.UserContext(), rec)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransitionFromEntity(t))
}

// ListTransitions godoc
// @Summary      Consultar el libro de inventario
// @Description  Más recientes primero. Fechas en RFC3339 o YYYY-MM-DD; end_date sin hora cubre el día completo.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id        query  string  false  "Producto"
// @Param        transaction_type  query  string  false  "sale, purchase, customer_return, supplier_return, adjustment"
// @Param        start_date        query  string  false  "Desde (inclusive)"
// @Param        end_date          query  string  false  "Hasta (inclusive)"
// @Param        page              query  int     false  "Página"  default(1)
// @Param        limit             query  int     false  "Límite"  default(50)
// @Success      200  {object}  dto.TransitionListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/transitions [get]
func (h *InventoryHandler) ListTransitions(c *fiber.Ctx) error {
	filter, err := transitionFilterFromQuery(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.query.List(c.UserContext(), filter, c.QueryInt("page", 1), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.TransitionListResponse{
		Transitions: dto.TransitionsFromEntities(out.Transitions),
		Pagination:  dto.PaginationFrom(out.Pagination),
	})
}

// Report godoc
// @Summary      Exportar el libro en PDF
// @Description  Mismos filtros que el listado; máximo 1000 filas.
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Param        product_id        query  string  false  "Producto"
// @Param        transaction_type  query  string  false  "Tipo de movimiento"
// @Param        start_date        query  string  false  "Desde (inclusive)"
// @Param        end_date          query  string  false  "Hasta (inclusive)"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/transitions/report [get]
func (h *InventoryHandler) Report(c *fiber.Ctx) error {
	filter, err := transitionFilterFromQuery(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	pdf, err := h.reporter.Render(c.UserContext(), filter, ActorFrom(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="libro-inventario-%s.pdf"`, time.Now().UTC().Format("20060102-150405")))
	return c.Send(pdf)
}

// Reconcile godoc
// @Summary      Reparar auditoría de devoluciones
// @Description  Agrega el movimiento faltante de cada devolución confirmada sin auditoría.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReconcileResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory/reconcile [post]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	n, err := h.reconciler.Run(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ReconcileResponse{Repaired: n})
}

func transitionFilterFromQuery(c *fiber.Ctx) (repository.TransitionFilter, error) {
	filter := repository.TransitionFilter{ProductID: strings.TrimSpace(c.Query("product_id"))}
	if s := c.Query("transaction_type"); s != "" {
		kind, err := domaininv.ParseKind(s)
		if err != nil {
			return filter, err
		}
		filter.TransactionType = kind
	}
	from, to, err := parseDateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return filter, err
	}
	filter.From, filter.To = from, to
	return filter, nil
}

// parseDateRange acepta RFC3339 o YYYY-MM-DD (UTC). Un fin sin hora incluye todo ese día.
func parseDateRange(start, end string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if start != "" {
		t, _, err := parseDate(start)
		if err != nil {
			return nil, nil, fmt.Errorf("start_date %q: %w", start, domain.ErrInvalidInput)
		}
		from = &t
	}
	if end != "" {
		t, dayOnly, err := parseDate(end)
		if err != nil {
			return nil, nil, fmt.Errorf("end_date %q: %w", end, domain.ErrInvalidInput)
		}
		if dayOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		to = &t
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, fmt.Errorf("start_date posterior a end_date: %w", domain.ErrInvalidInput)
	}
	return from, to, nil
}

func parseDate(s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), false, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}
