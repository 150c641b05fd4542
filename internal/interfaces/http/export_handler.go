package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/pawsitive-care/inventory-api/internal/application/dto"
	"github.com/pawsitive-care/inventory-api/internal/application/inventory"
)

// ExportHandler descargas CSV y PDF (admin/staff).
type ExportHandler struct {
	uc *inventory.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *inventory.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// ItemsCSV godoc
// @Summary      Exportar catálogo a CSV
// @Tags         export
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}  file
// @Router       /api/export/items.csv [get]
func (h *ExportHandler) ItemsCSV(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.uc.WriteItemsCSV(c.UserContext(), &buf); err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Attachment("items.csv")
	return c.Send(buf.Bytes())
}

// MovementsCSV godoc
// @Summary      Exportar movimientos a CSV
// @Tags         export
// @Security     Bearer
// @Produce      text/csv
// @Param        item_id  query  string  false  "ID del artículo"
// @Param        type     query  string  false  "IN | OUT | ADJUSTMENT"
// @Param        from     query  string  false  "YYYY-MM-DD"
// @Param        to       query  string  false  "YYYY-MM-DD (inclusive)"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/export/movements.csv [get]
func (h *ExportHandler) MovementsCSV(c *fiber.Ctx) error {
	var q dto.MovementReportQuery
	if err := c.QueryParser(&q); err != nil {
		return badParams(c)
	}
	var buf bytes.Buffer
	if err := h.uc.WriteMovementsCSV(c.UserContext(), &buf, q); err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Attachment("movements.csv")
	return c.Send(buf.Bytes())
}

// StockReportPDF godoc
// @Summary      Reporte de stock en PDF
// @Tags         export
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  file
// @Router       /api/export/stock-report.pdf [get]
func (h *ExportHandler) StockReportPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.StockReportPDF(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment(filename)
	return c.Send(pdfBytes)
}
