package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pawsitive-care/inventory-api/internal/application/dto"
	"github.com/pawsitive-care/inventory-api/internal/application/inventory"
)

// InventoryHandler maneja movimientos, estados, alertas y reconciliación (protegido).
type InventoryHandler struct {
	movements     *inventory.MovementUseCase
	query         *inventory.QueryUseCase
	reconcile     *inventory.ReconcileUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	movements *inventory.MovementUseCase,
	query *inventory.QueryUseCase,
	reconcile *inventory.ReconcileUseCase,
	replenishment *inventory.ReplenishmentUseCase,
) *InventoryHandler {
	return &InventoryHandler{movements: movements, query: query, reconcile: reconcile, replenishment: replenishment}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  delta con signo; reason ∈ restock|sale|use|damage|expired|correction|return.
// @Description  expected_quantity opcional: si la cantidad actual difiere se responde 409.
// @Description  target_quantity (conteo físico) reemplaza delta; sin diferencia no se registra movimiento.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "item_id, delta, reason, note, expected_quantity"
// @Success      201   {object}  dto.MovementResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.movements.ApplyFromRequest(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RegisterMovementBatch godoc
// @Summary      Registrar lote de movimientos
// @Description  Cada línea se aplica en su propia transacción; las rechazadas se reportan sin revertir las demás.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementBatchRequest  true  "movements[] (1 a 100)"
// @Success      200   {object}  dto.MovementBatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/batch [post]
func (h *InventoryHandler) RegisterMovementBatch(c *fiber.Ctx) error {
	var in dto.MovementBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.movements.ApplyBatch(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MovementReport godoc
// @Summary      Reporte de movimientos
// @Description  Hasta 100 movimientos, más reciente primero, con conteo por tipo.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  string  false  "ID del artículo"
// @Param        type     query  string  false  "IN | OUT | ADJUSTMENT"
// @Param        from     query  string  false  "YYYY-MM-DD"
// @Param        to       query  string  false  "YYYY-MM-DD (inclusive)"
// @Success      200  {object}  dto.MovementReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) MovementReport(c *fiber.Ctx) error {
	var q dto.MovementReportQuery
	if err := c.QueryParser(&q); err != nil {
		return badParams(c)
	}
	out, err := h.query.MovementReport(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de un artículo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del artículo"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/history [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badParams(c)
	}
	out, err := h.query.History(c.UserContext(), c.Params("id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Status godoc
// @Summary      Estado derivado de un artículo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.ItemStatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/status [get]
func (h *InventoryHandler) Status(c *fiber.Ctx) error {
	out, err := h.query.GetStatus(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Alerts godoc
// @Summary      Artículos que requieren atención
// @Description  Agotados primero, luego bajo stock, luego vencidos y por vencer.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AlertDTO
// @Router       /api/inventory/alerts [get]
func (h *InventoryHandler) Alerts(c *fiber.Ctx) error {
	out, err := h.query.ListAlerts(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":  len(out),
		"alerts": out,
	})
}

// Reconcile godoc
// @Summary      Reconciliación del ledger (admin)
// @Description  Reconstruye cada artículo desde 0 y reporta eslabones rotos, errores aritméticos y deriva. No repara.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReconcileResponse
// @Router       /api/inventory/reconcile [get]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	out, err := h.reconcile.Run(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ReconcileItem godoc
// @Summary      Reconciliación de un artículo (admin)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.LedgerReportDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/reconcile [get]
func (h *InventoryHandler) ReconcileItem(c *fiber.Ctx) error {
	out, err := h.reconcile.Item(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Artículos en o bajo su umbral con la cantidad sugerida de pedido,
//
//	agotados primero y luego por mayor déficit.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment-list [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}
