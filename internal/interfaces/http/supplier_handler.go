package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pawsitive-care/inventory-api/internal/application/dto"
	"github.com/pawsitive-care/inventory-api/internal/application/usecase"
)

// SupplierHandler maneja las peticiones HTTP para Supplier (protegido).
type SupplierHandler struct {
	uc *usecase.SupplierUseCase
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(uc *usecase.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.SupplierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar proveedores
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        include_inactive  query  bool  false  "Incluir desactivados"
// @Param        limit             query  int   false  "Límite"  default(20)
// @Param        offset            query  int   false  "Offset"  default(0)
// @Success      200  {object}  dto.SupplierListResponse
// @Router       /api/suppliers [get]
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badParams(c)
	}
	out, err := h.uc.List(c.UserContext(), c.QueryBool("include_inactive", false), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener proveedor por ID
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.SupplierResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [get]
func (h *SupplierHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del proveedor"
// @Param        body  body  dto.UpdateSupplierRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.SupplierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [put]
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSupplierRequest
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
// @Summary      Desactivar proveedor
// @Tags         suppliers
// @Security     Bearer
// @Param        id   path  string  true  "ID del proveedor"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [delete]
func (h *SupplierHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
