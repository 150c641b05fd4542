package inventory

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pawsitive-care/inventory-api/internal/application/dto"
	"github.com/pawsitive-care/inventory-api/internal/domain/inventory"
	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
)

var (
	itemsCSVHeader = []string{
		"ID", "SKU", "Name", "Category", "Unit", "Quantity", "ReorderThreshold",
		"UnitPrice", "StockStatus", "ExpiryDate", "ExpiryStatus", "Active",
	}
	movementsCSVHeader = []string{
		"ID", "ItemID", "SKU", "Type", "Delta", "QuantityBefore", "QuantityAfter",
		"Reason", "Note", "CreatedBy", "CreatedAt",
	}
)

// StockReportData datos del reporte PDF de stock.
type StockReportData struct {
	Title        string
	GeneratedAt  time.Time
	TotalItems   int
	LowStock     int
	OutOfStock   int
	ExpiringSoon int
	Expired      int
	TotalValue   decimal.Decimal
	Categories   []dto.CategoryBreakdownDTO
	Alerts       []dto.AlertDTO
}

// ExportUseCase exporta catálogo y ledger en formato tabular (CSV) y el reporte PDF.
type ExportUseCase struct {
	itemRepo      repository.ItemRepository
	movRepo       repository.StockMovementRepository
	analyticsRepo repository.AnalyticsRepository
	query         *QueryUseCase
	classifier    *inventory.Classifier
	generator     ReportGenerator
	title         string
}

// NewExportUseCase construye el caso de uso. generator puede ser nil si no se expone PDF.
func NewExportUseCase(
	itemRepo repository.ItemRepository,
	movRepo repository.StockMovementRepository,
	analyticsRepo repository.AnalyticsRepository,
	query *QueryUseCase,
	classifier *inventory.Classifier,
	generator ReportGenerator,
	title string,
) *ExportUseCase {
	return &ExportUseCase{
		itemRepo:      itemRepo,
		movRepo:       movRepo,
		analyticsRepo: analyticsRepo,
		query:         query,
		classifier:    classifier,
		generator:     generator,
		title:         title,
	}
}

// WriteItemsCSV escribe todos los artículos (incluidos inactivos) ordenados por SKU.
func (uc *ExportUseCase) WriteItemsCSV(ctx context.Context, w io.Writer) error {
	items, _, err := uc.itemRepo.List(ctx, repository.ItemFilter{IncludeInactive: true, SortBy: repository.SortBySKU})
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(itemsCSVHeader); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	for _, it := range items {
		stock, expiry := uc.classifier.Status(it.Quantity, it.ReorderThreshold, it.ExpiryDate)
		exp := ""
		if it.ExpiryDate != nil {
			exp = it.ExpiryDate.Format(dto.DateLayout)
		}
		rec := []string{
			it.ID, it.SKU, it.Name, it.Category, it.Unit,
			strconv.Itoa(it.Quantity), strconv.Itoa(it.ReorderThreshold),
			it.UnitPrice.StringFixed(2), stock, exp, expiry,
			strconv.FormatBool(it.IsActive),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMovementsCSV escribe el ledger (opcionalmente de un artículo y/o rango de fechas), más reciente primero.
func (uc *ExportUseCase) WriteMovementsCSV(ctx context.Context, w io.Writer, q dto.MovementReportQuery) error {
	f, err := movementFilter(q)
	if err != nil {
		return err
	}
	movs, err := uc.movRepo.List(ctx, f)
	if err != nil {
		return err
	}
	skus, err := uc.query.skuLookup(ctx)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(movementsCSVHeader); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	for _, m := range movs {
		rec := []string{
			m.ID, m.ItemID, skus[m.ItemID], m.Type,
			strconv.Itoa(m.Delta), strconv.Itoa(m.QuantityBefore), strconv.Itoa(m.QuantityAfter),
			m.Reason, m.Note, m.CreatedBy, m.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// StockReportPDF arma los datos del reporte y delega el render al ReportGenerator.
func (uc *ExportUseCase) StockReportPDF(ctx context.Context) ([]byte, string, error) {
	if uc.generator == nil {
		return nil, "", fmt.Errorf("export: generador PDF no configurado")
	}
	now := uc.classifier.Now()
	today := inventory.DateOnly(now)
	summary, err := uc.analyticsRepo.GetStockSummary(ctx, today, today.AddDate(0, 0, uc.classifier.WindowDays))
	if err != nil {
		return nil, "", err
	}
	cats, err := uc.analyticsRepo.GetCategoryBreakdown(ctx)
	if err != nil {
		return nil, "", err
	}
	alerts, err := uc.query.ListAlerts(ctx)
	if err != nil {
		return nil, "", err
	}

	data := StockReportData{
		Title:        uc.title,
		GeneratedAt:  now,
		TotalItems:   summary.TotalItems,
		LowStock:     summary.LowStock,
		OutOfStock:   summary.OutOfStock,
		ExpiringSoon: summary.ExpiringSoon,
		Expired:      summary.Expired,
		TotalValue:   summary.TotalValue,
		Alerts:       alerts,
	}
	for _, c := range cats {
		data.Categories = append(data.Categories, dto.CategoryBreakdownDTO{
			Category: c.Category, Items: c.Items, Units: c.Units, TotalValue: c.TotalValue,
		})
	}

	pdfBytes, err := uc.generator.GenerateStockReport(data)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("stock-report-%s.pdf", now.Format("20060102"))
	return pdfBytes, filename, nil
}
