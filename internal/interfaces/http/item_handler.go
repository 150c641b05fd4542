package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pawsitive-care/inventory-api/internal/application/dto"
	"github.com/pawsitive-care/inventory-api/internal/application/usecase"
)

// ItemHandler maneja el catálogo de artículos (protegido).
type ItemHandler struct {
	uc *usecase.ItemUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create godoc
// @Summary      Crear artículo
// @Description  SKU vacío se genera como CAT-XXXXXXXX. initial_quantity se registra como movimiento restock.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener artículo por ID
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar artículos
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        q                 query  string  false  "Búsqueda en nombre, SKU o descripción"
// @Param        category          query  string  false  "MEDICINE | SUPPLY | EQUIPMENT | FOOD | OTHER"
// @Param        low_stock         query  bool    false  "Solo en o bajo el umbral"
// @Param        expired           query  bool    false  "Solo vencidos"
// @Param        include_inactive  query  bool    false  "Incluir desactivados"
// @Param        sort              query  string  false  "name | sku | quantity | unit_price | expiry_date"
// @Param        order             query  string  false  "asc | desc"
// @Param        limit             query  int     false  "Límite"  default(20)
// @Param        offset            query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ItemListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	var q dto.ItemListQuery
	if err := c.QueryParser(&q); err != nil {
		return badParams(c)
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar artículo
// @Description  Todos los campos salvo la cantidad, que solo cambia con movimientos.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del artículo"
// @Param        body  body  dto.UpdateItemRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar artículo (borrado lógico, admin)
// @Tags         items
// @Security     Bearer
// @Param        id   path  string  true  "ID del artículo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
