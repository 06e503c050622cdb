package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// MovementHandler maneja el registro y la consulta de movimientos (protegido).
type MovementHandler struct {
	engine *inventory.MovementEngine
	query  *inventory.MovementQueryUseCase
	errs   errorMapper
}

// NewMovementHandler construye el handler.
func NewMovementHandler(engine *inventory.MovementEngine, query *inventory.MovementQueryUseCase, errs errorMapper) *MovementHandler {
	return &MovementHandler{engine: engine, query: query, errs: errs}
}

// RecordMovement godoc
// @Summary      Registrar movimiento de estoque
// @Description  ENTRADA suma, SAIDA resta, AJUSTE_INVENTARIO fija el conteo y TRANSFERENCIA
//
//	registra solo la pierna de salida hacia destination_location_id.
//
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "product_id, location_id, type, reason, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) RecordMovement(c *fiber.Ctx) error {
	userID := ActorID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.engine.RecordMovement(c.Context(), inventory.MovementInput{
		ProductID:             in.ProductID,
		LocationID:            in.LocationID,
		Type:                  entity.MovementType(in.Type),
		Reason:                entity.MovementReason(in.Reason),
		Quantity:              in.Quantity,
		Note:                  in.Note,
		UserID:                userID,
		DestinationLocationID: in.DestinationLocationID,
	})
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar movimientos
// @Description  Filtros combinables con AND. start/end en RFC3339, ventana [start, end). Más recientes primero.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "Producto"
// @Param        location_id  query  string  false  "Local"
// @Param        transfer_id  query  string  false  "Transferencia"
// @Param        type         query  string  false  "ENTRADA | SAIDA | TRANSFERENCIA | AJUSTE_INVENTARIO"
// @Param        reason       query  string  false  "Motivo"
// @Param        start        query  string  false  "Desde (inclusive, RFC3339)"
// @Param        end          query  string  false  "Hasta (exclusivo, RFC3339)"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var q dto.MovementListQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	start, err := parseTime("start", q.Start)
	if err != nil {
		return h.errs.write(c, err)
	}
	end, err := parseTime("end", q.End)
	if err != nil {
		return h.errs.write(c, err)
	}
	out, err := h.query.List(c.Context(), inventory.MovementQuery{
		ProductID:  q.ProductID,
		LocationID: q.LocationID,
		TransferID: q.TransferID,
		Type:       q.Type,
		Reason:     q.Reason,
		Start:      start,
		End:        end,
	})
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.query.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

func parseTime(name, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, domain.Invalid("%s debe estar en RFC3339", name)
	}
	return &t, nil
}
