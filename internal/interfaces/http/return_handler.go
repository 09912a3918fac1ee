package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-pos/internal/application/dto"
	"github.com/jhoicas/retail-pos/internal/application/inventory"
	"github.com/jhoicas/retail-pos/internal/domain/repository"
	"github.com/jhoicas/retail-pos/pkg/logger"
)

// ReturnHandler maneja devoluciones de cliente y a proveedor (protegido).
type ReturnHandler struct {
	processor *inventory.ReturnProcessor
	log       *logger.Logger
}

// NewReturnHandler construye el handler.
func NewReturnHandler(processor *inventory.ReturnProcessor, log *logger.Logger) *ReturnHandler {
	return &ReturnHandler{processor: processor, log: log}
}

// Create godoc
// @Summary      Registrar devolución
// @Description  customer suma stock; supplier resta y exige stock suficiente.
// @Tags         returns
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReturnRequest  true  "product_id, return_type, quantity, reason"
// @Success      201   {object}  dto.CreateReturnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/returns [post]
func (h *ReturnHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReturnRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	res, err := h.processor.Process(c.UserContext(), inventory.ReturnInput{
		ProductID:  in.ProductID,
		ReturnType: in.ReturnType,
		Quantity:   *in.Quantity,
		Reason:     strings.TrimSpace(in.Reason),
		Notes:      in.Notes,
		PartyName:  in.PartyName,
		PartyID:    in.PartyID,
		Actor:      ActorFrom(c),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateReturnResponse{
		Return:   dto.ReturnFromEntity(res.Return),
		NewStock: res.NewStock,
	})
}

// GetByID godoc
// @Summary      Obtener devolución
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la devolución"
// @Success      200  {object}  dto.ReturnResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/returns/{id} [get]
func (h *ReturnHandler) GetByID(c *fiber.Ctx) error {
	r, err := h.processor.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ReturnFromEntity(r))
}

// List godoc
// @Summary      Listar devoluciones
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "Producto"
// @Param        return_type  query  string  false  "customer o supplier"
// @Param        start_date   query  string  false  "Desde (inclusive)"
// @Param        end_date     query  string  false  "Hasta (inclusive)"
// @Param        page         query  int     false  "Página"  default(1)
// @Param        limit        query  int     false  "Límite"  default(50)
// @Success      200  {object}  dto.ReturnListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/returns [get]
func (h *ReturnHandler) List(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	filter := repository.ReturnFilter{
		ProductID:  strings.TrimSpace(c.Query("product_id")),
		ReturnType: c.Query("return_type"),
		From:       from,
		To:         to,
	}
	out, err := h.processor.List(c.UserContext(), filter, c.QueryInt("page", 1), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, h.log, err)
	}
	items := make([]dto.ReturnResponse, 0, len(out.Returns))
	for _, r := range out.Returns {
		items = append(items, dto.ReturnFromEntity(r))
	}
	return c.JSON(dto.ReturnListResponse{Returns: items, Pagination: dto.PaginationFrom(out.Pagination)})
}
