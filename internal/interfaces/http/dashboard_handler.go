package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/pawsitive-care/inventory-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen del inventario con la forma que corresponde al rol del token.
// GET /api/dashboard
//
// Respuesta: DashboardSummaryDTO (conteos, top_alerts[5]; total_stock_value y
// recent_movements[10] para admin/staff; expiring_medicines para vet).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), GetRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// GetCategories desglose de artículos, unidades y valor por categoría.
// GET /api/dashboard/categories
func (h *DashboardHandler) GetCategories(c *fiber.Ctx) error {
	out, err := h.uc.CategoryBreakdown(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetSuppliers artículos y valor de stock por proveedor, mayor valor primero.
// GET /api/dashboard/suppliers
func (h *DashboardHandler) GetSuppliers(c *fiber.Ctx) error {
	out, err := h.uc.SupplierBreakdown(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
