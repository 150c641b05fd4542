// Package pdf genera el reporte de stock de la clínica.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte  │  Fecha de generación          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Activos / Bajo stock / Agotados / Vencimientos     │
//	│  VALOR TOTAL DEL INVENTARIO                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Categoría | Artículos | Unidades | Valor             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Artículo | Cant | Umbral | Stock | Vence       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/pawsitive-care/inventory-api/internal/application/dto"
	appinv "github.com/pawsitive-care/inventory-api/internal/application/inventory"
	"github.com/pawsitive-care/inventory-api/internal/domain/inventory"
)

var _ appinv.ReportGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 110, Blue: 100}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa inventory.ReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	author string
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator(author string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{author: author}
}

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateStockReport(data appinv.StockReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(data.Title, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(data))
	m.AddRows(valueRow(data.TotalValue))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("DESGLOSE POR CATEGORÍA"))
	m.AddRows(categoryHeaderRow())
	for _, r := range categoryRows(data.Categories) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("ARTÍCULOS QUE REQUIEREN ATENCIÓN"))
	if len(data.Alerts) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin alertas activas.", props.Text{Size: 8, Color: colorGray, Top: 2}),
		)))
	} else {
		m.AddRows(alertHeaderRow())
		for _, r := range alertRows(data.Alerts) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(data appinv.StockReportData) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(data.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de stock", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+data.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// summaryRow: cinco contadores en columnas.
func summaryRow(data appinv.StockReportData) core.Row {
	counter := func(label string, n int, size int, c *props.Color) core.Col {
		return col.New(size).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(strconv.Itoa(n), props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 6, Color: c}),
		)
	}
	return row.New(16).Add(
		counter("Activos", data.TotalItems, 2, nil),
		counter("Bajo stock", data.LowStock, 2, nil),
		counter("Agotados", data.OutOfStock, 3, colorDanger),
		counter("Por vencer", data.ExpiringSoon, 2, nil),
		counter("Vencidos", data.Expired, 3, colorDanger),
	)
}

func valueRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("VALOR TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New("$"+formatMoney(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	))
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func cell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func categoryHeaderRow() core.Row {
	return row.New(6).Add(
		headerCell("Categoría", 4, align.Left),
		headerCell("Artículos", 2, align.Right),
		headerCell("Unidades", 2, align.Right),
		headerCell("Valor", 4, align.Right),
	)
}

func categoryRows(cats []dto.CategoryBreakdownDTO) []core.Row {
	result := make([]core.Row, 0, len(cats))
	for _, c := range cats {
		result = append(result, row.New(6).Add(
			cell(c.Category, 4, align.Left),
			cell(strconv.Itoa(c.Items), 2, align.Right),
			cell(strconv.Itoa(c.Units), 2, align.Right),
			cell("$"+formatMoney(c.TotalValue), 4, align.Right),
		))
	}
	return result
}

func alertHeaderRow() core.Row {
	return row.New(6).Add(
		headerCell("SKU", 2, align.Left),
		headerCell("Artículo", 4, align.Left),
		headerCell("Cant.", 1, align.Right),
		headerCell("Umbral", 1, align.Right),
		headerCell("Stock", 2, align.Center),
		headerCell("Vence", 2, align.Center),
	)
}

func alertRows(alerts []dto.AlertDTO) []core.Row {
	result := make([]core.Row, 0, len(alerts))
	for _, a := range alerts {
		expiry := "—"
		if a.ExpiryDate != nil {
			expiry = *a.ExpiryDate
		}
		result = append(result, row.New(6).Add(
			cell(a.SKU, 2, align.Left),
			cell(a.Name, 4, align.Left),
			cell(strconv.Itoa(a.Quantity), 1, align.Right),
			cell(strconv.Itoa(a.ReorderThreshold), 1, align.Right),
			cell(statusLabel(a.StockStatus), 2, align.Center),
			cell(expiry, 2, align.Center),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func statusLabel(s string) string {
	switch s {
	case inventory.StockOutOfStock:
		return "AGOTADO"
	case inventory.StockLow:
		return "BAJO"
	default:
		return "OK"
	}
}

// formatMoney dos decimales con puntos de miles.
// Ej: 25000 → "25.000,00", 1234.5 → "1.234,50"
func formatMoney(d decimal.Decimal) string {
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]

	n := len(intPart)
	buf := make([]byte, 0, n+n/3+4)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	buf = append(buf, ',')
	buf = append(buf, frac...)
	return string(buf)
}
