package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pawsitive-care/inventory-api/internal/application/dto"
	"github.com/pawsitive-care/inventory-api/internal/application/purchasing"
)

// PurchaseOrderHandler órdenes de compra y recepción de mercadería (protegido).
type PurchaseOrderHandler struct {
	uc *purchasing.UseCase
}

// NewPurchaseOrderHandler construye el handler.
func NewPurchaseOrderHandler(uc *purchasing.UseCase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de compra (DRAFT)
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "supplier_id, expected_delivery, items"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
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
// @Summary      Obtener orden con sus líneas
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        status       query  string  false  "DRAFT | PENDING | APPROVED | ORDERED | RECEIVED | CANCELLED"
// @Param        supplier_id  query  string  false  "ID del proveedor"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.PurchaseOrderListResponse
// @Router       /api/purchase-orders [get]
func (h *PurchaseOrderHandler) List(c *fiber.Ctx) error {
	var q dto.PurchaseOrderListQuery
	if err := c.QueryParser(&q); err != nil {
		return badParams(c)
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Cambiar estado de la orden
// @Description  DRAFT→PENDING|CANCELLED, PENDING→APPROVED|CANCELLED, APPROVED→ORDERED|CANCELLED, ORDERED→CANCELLED.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la orden"
// @Param        body  body  dto.ChangeStatusRequest  true  "status"
// @Success      200   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/status [patch]
func (h *PurchaseOrderHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ChangeStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Receive godoc
// @Summary      Recibir mercadería
// @Description  Solo órdenes APPROVED u ORDERED. Cada línea genera un movimiento restock en la misma transacción.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la orden"
// @Param        body  body  dto.ReceiveRequest  true  "lines: line_id + quantity"
// @Success      200   {object}  dto.ReceiveResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receive [post]
func (h *PurchaseOrderHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Receive(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
