package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/inventory"
)

// BalanceHandler expone los saldos por producto y local (protegido).
type BalanceHandler struct {
	uc   *inventory.BalanceUseCase
	errs errorMapper
}

// NewBalanceHandler construye el handler.
func NewBalanceHandler(uc *inventory.BalanceUseCase, errs errorMapper) *BalanceHandler {
	return &BalanceHandler{uc: uc, errs: errs}
}

// Create godoc
// @Summary      Crear saldo
// @Description  Crea el saldo inicial de un par producto/local. Si ya existe responde 409; no sobrescribe.
// @Tags         balances
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBalanceRequest  true  "product_id, location_id, quantity >= 0"
// @Success      201   {object}  dto.BalanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/balances [post]
func (h *BalanceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBalanceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateBalance(c.Context(), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar saldos
// @Description  Requiere product_id o location_id; con ambos devuelve el par.
// @Tags         balances
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "Producto"
// @Param        location_id  query  string  false  "Local"
// @Success      200  {object}  dto.BalanceListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/balances [get]
func (h *BalanceHandler) List(c *fiber.Ctx) error {
	var q dto.BalanceListQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.List(c.Context(), q)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// ListLowStock godoc
// @Summary      Saldos por debajo del mínimo
// @Tags         balances
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BalanceListResponse
// @Router       /api/balances/low-stock [get]
func (h *BalanceHandler) ListLowStock(c *fiber.Ctx) error {
	out, err := h.uc.ListLowStock(c.Context())
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener saldo por ID
// @Tags         balances
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del saldo"
// @Success      200  {object}  dto.BalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/balances/{id} [get]
func (h *BalanceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// ProductStock godoc
// @Summary      Total de estoque de un producto
// @Description  total suma todos los locales; sellable_total solo los locales vendibles.
// @Tags         balances
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock [get]
func (h *BalanceHandler) ProductStock(c *fiber.Ctx) error {
	out, err := h.uc.ProductStock(c.Context(), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}
