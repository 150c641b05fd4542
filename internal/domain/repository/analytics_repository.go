package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StockSummary conteos agregados de artículos activos.
type StockSummary struct {
	TotalItems   int
	LowStock     int // 0 < quantity <= threshold
	OutOfStock   int
	ExpiringSoon int // today <= expiry_date <= windowEnd
	Expired      int
	TotalValue   decimal.Decimal // SUM(quantity * unit_price)
}

// CategoryStat desglose por categoría para reportes.
type CategoryStat struct {
	Category   string
	Items      int
	Units      int
	TotalValue decimal.Decimal
}

// SupplierStat artículos activos y valor de stock de un proveedor.
type SupplierStat struct {
	SupplierID string
	Name       string
	IsActive   bool
	Items      int
	Units      int
	TotalValue decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura para dashboard y reporte PDF.
type AnalyticsRepository interface {
	// GetStockSummary cuenta estados con la misma regla de ClassifyStock/ClassifyExpiry.
	GetStockSummary(ctx context.Context, today, windowEnd time.Time) (*StockSummary, error)

	// GetCategoryBreakdown agrupa artículos activos por categoría, ordenado por categoría.
	GetCategoryBreakdown(ctx context.Context) ([]CategoryStat, error)

	// GetSupplierBreakdown incluye proveedores sin artículos; ordenado por valor desc y nombre.
	GetSupplierBreakdown(ctx context.Context) ([]SupplierStat, error)
}
