// Package analytics contiene el resumen del dashboard según el rol del usuario.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pawsitive-care/inventory-api/internal/application/dto"
	appinv "github.com/pawsitive-care/inventory-api/internal/application/inventory"
	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/internal/domain/inventory"
	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
)

const (
	dashboardTopAlerts       = 5  // alertas en el widget
	dashboardRecentMovements = 10 // movimientos recientes (admin/staff)
)

// DashboardUseCase arma el resumen del inventario con forma distinta según el rol.
//
// Fuente de datos: AnalyticsRepository para los conteos, QueryUseCase para alertas y movimientos.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	itemRepo      repository.ItemRepository
	query         *appinv.QueryUseCase
	classifier    *inventory.Classifier
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	analyticsRepo repository.AnalyticsRepository,
	itemRepo repository.ItemRepository,
	query *appinv.QueryUseCase,
	classifier *inventory.Classifier,
) *DashboardUseCase {
	return &DashboardUseCase{
		analyticsRepo: analyticsRepo,
		itemRepo:      itemRepo,
		query:         query,
		classifier:    classifier,
	}
}

// GetSummary construye el DashboardSummaryDTO para el rol indicado.
//
// Consultas en paralelo:
//  1. GetStockSummary        → conteos y valor total
//  2. ListAlerts             → top 5 alertas
//  3. Recent (admin/staff)   → últimos 10 movimientos
//  4. medicamentos (vet)     → por vencer o vencidos
func (uc *DashboardUseCase) GetSummary(ctx context.Context, role string) (*dto.DashboardSummaryDTO, error) {
	today := inventory.DateOnly(uc.classifier.Now())
	windowEnd := today.AddDate(0, 0, uc.classifier.WindowDays)
	showValue := role == entity.RoleAdmin || role == entity.RoleStaff
	showMedicines := role == entity.RoleVet

	// ── Goroutines para paralelizar las consultas ─────────────────────────────
	type summaryResult struct {
		sum *repository.StockSummary
		err error
	}
	type alertsResult struct {
		alerts []dto.AlertDTO
		err    error
	}
	type movementsResult struct {
		movs []dto.MovementResponse
		err  error
	}
	type medicinesResult struct {
		items []dto.ItemStatusResponse
		err   error
	}

	sumCh := make(chan summaryResult, 1)
	alertsCh := make(chan alertsResult, 1)
	movsCh := make(chan movementsResult, 1)
	medsCh := make(chan medicinesResult, 1)

	go func() {
		s, err := uc.analyticsRepo.GetStockSummary(ctx, today, windowEnd)
		sumCh <- summaryResult{s, err}
	}()
	go func() {
		a, err := uc.query.ListAlerts(ctx)
		alertsCh <- alertsResult{a, err}
	}()
	go func() {
		if !showValue {
			movsCh <- movementsResult{}
			return
		}
		m, err := uc.query.Recent(ctx, dashboardRecentMovements)
		movsCh <- movementsResult{m, err}
	}()
	go func() {
		if !showMedicines {
			medsCh <- medicinesResult{}
			return
		}
		items, err := uc.expiringMedicines(ctx, today, windowEnd)
		medsCh <- medicinesResult{items, err}
	}()

	sum := <-sumCh
	alerts := <-alertsCh
	movs := <-movsCh
	meds := <-medsCh

	if sum.err != nil {
		return nil, fmt.Errorf("dashboard: resumen de stock: %w", sum.err)
	}
	if alerts.err != nil {
		return nil, fmt.Errorf("dashboard: alertas: %w", alerts.err)
	}
	if movs.err != nil {
		return nil, fmt.Errorf("dashboard: movimientos recientes: %w", movs.err)
	}
	if meds.err != nil {
		return nil, fmt.Errorf("dashboard: medicamentos por vencer: %w", meds.err)
	}

	// ── Construir DTO ─────────────────────────────────────────────────────────
	top := alerts.alerts
	if len(top) > dashboardTopAlerts {
		top = top[:dashboardTopAlerts]
	}
	out := &dto.DashboardSummaryDTO{
		Role:              role,
		TotalItems:        sum.sum.TotalItems,
		LowStock:          sum.sum.LowStock,
		OutOfStock:        sum.sum.OutOfStock,
		ExpiringSoon:      sum.sum.ExpiringSoon,
		Expired:           sum.sum.Expired,
		TopAlerts:         top,
		RecentMovements:   movs.movs,
		ExpiringMedicines: meds.items,
	}
	if showValue {
		v := sum.sum.TotalValue.Round(2)
		out.TotalStockValue = &v
	}
	return out, nil
}

// CategoryBreakdown valor y unidades por categoría.
func (uc *DashboardUseCase) CategoryBreakdown(ctx context.Context) ([]dto.CategoryBreakdownDTO, error) {
	cats, err := uc.analyticsRepo.GetCategoryBreakdown(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryBreakdownDTO, 0, len(cats))
	for _, c := range cats {
		out = append(out, dto.CategoryBreakdownDTO{
			Category:   c.Category,
			Items:      c.Items,
			Units:      c.Units,
			TotalValue: c.TotalValue.Round(2),
		})
	}
	return out, nil
}

// SupplierBreakdown artículos y valor por proveedor, mayor valor primero, con totales.
func (uc *DashboardUseCase) SupplierBreakdown(ctx context.Context) (*dto.SupplierSummaryDTO, error) {
	stats, err := uc.analyticsRepo.GetSupplierBreakdown(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.SupplierSummaryDTO{
		TotalSuppliers: len(stats),
		TotalValue:     decimal.Zero,
		Suppliers:      make([]dto.SupplierBreakdownDTO, 0, len(stats)),
	}
	for _, s := range stats {
		if s.IsActive {
			out.ActiveSuppliers++
		}
		out.TotalItems += s.Items
		out.TotalValue = out.TotalValue.Add(s.TotalValue)
		out.Suppliers = append(out.Suppliers, dto.SupplierBreakdownDTO{
			SupplierID: s.SupplierID,
			Name:       s.Name,
			IsActive:   s.IsActive,
			Items:      s.Items,
			Units:      s.Units,
			TotalValue: s.TotalValue.Round(2),
		})
	}
	out.TotalValue = out.TotalValue.Round(2)
	return out, nil
}

// expiringMedicines medicamentos activos vencidos o dentro de la ventana, por fecha de vencimiento.
func (uc *DashboardUseCase) expiringMedicines(ctx context.Context, today, windowEnd time.Time) ([]dto.ItemStatusResponse, error) {
	items, _, err := uc.itemRepo.List(ctx, repository.ItemFilter{
		Category:       entity.CategoryMedicine,
		ExpiringBefore: windowEnd,
		Today:          today,
		SortBy:         repository.SortByExpiryDate,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemStatusResponse, 0, len(items))
	for _, it := range items {
		out = append(out, appinv.ToItemStatus(it, uc.classifier))
	}
	return out, nil
}
