package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/inventory"
)

// TransferHandler maneja transferencias entre locales y su comprobante PDF (protegido).
type TransferHandler struct {
	uc   *inventory.TransferUseCase
	slip *inventory.TransferSlipUseCase
	errs errorMapper
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *inventory.TransferUseCase, slip *inventory.TransferSlipUseCase, errs errorMapper) *TransferHandler {
	return &TransferHandler{uc: uc, slip: slip, errs: errs}
}

// Create godoc
// @Summary      Crear transferencia
// @Description  Mueve todos los items de origen a destino en una sola operación. Si algún item falla no se aplica ninguno.
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "origin_location_id, destination_location_id, items"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	userID := ActorID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	items := make([]inventory.TransferItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, inventory.TransferItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	out, err := h.uc.CreateTransfer(c.Context(), inventory.TransferInput{
		OriginLocationID:      in.OriginLocationID,
		DestinationLocationID: in.DestinationLocationID,
		Note:                  in.Note,
		UserID:                userID,
		Items:                 items,
	})
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar transferencias
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        status          query  string  false  "PENDENTE | EM_ANDAMENTO | CONCLUIDA | CANCELADA"
// @Param        origin_id       query  string  false  "Local de origen"
// @Param        destination_id  query  string  false  "Local de destino"
// @Param        product_id      query  string  false  "Producto incluido en algún item"
// @Success      200  {object}  dto.TransferListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	var q dto.TransferListQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.List(c.Context(), inventory.TransferQuery{
		Status:        q.Status,
		OriginID:      q.OriginID,
		DestinationID: q.DestinationID,
		ProductID:     q.ProductID,
	})
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener transferencia por ID
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la transferencia"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// DownloadSlip godoc
// @Summary      Descargar comprobante de transferencia
// @Tags         transfers
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la transferencia"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/slip [get]
func (h *TransferHandler) DownloadSlip(c *fiber.Ctx) error {
	pdf, filename, err := h.slip.Download(c.Context(), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
