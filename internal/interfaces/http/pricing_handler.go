package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pawsitive-care/inventory-api/internal/application/dto"
	"github.com/pawsitive-care/inventory-api/internal/application/inventory"
)

// PricingHandler cotizaciones por política de precio (todos los roles).
type PricingHandler struct {
	uc *inventory.PricingUseCase
}

// NewPricingHandler construye el handler.
func NewPricingHandler(uc *inventory.PricingUseCase) *PricingHandler {
	return &PricingHandler{uc: uc}
}

// Quote godoc
// @Summary      Cotizar
// @Description  Con item_id usa el precio y vencimiento del artículo; si no, base_price es obligatorio.
// @Tags         pricing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.QuoteRequest  true  "policy, item_id | base_price, quantity"
// @Success      200   {object}  dto.QuoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pricing/quote [post]
func (h *PricingHandler) Quote(c *fiber.Ctx) error {
	var in dto.QuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Quote(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Policies godoc
// @Summary      Políticas de precio disponibles
// @Tags         pricing
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PricingPolicyDTO
// @Router       /api/pricing/policies [get]
func (h *PricingHandler) Policies(c *fiber.Ctx) error {
	return c.JSON(h.uc.Policies())
}
