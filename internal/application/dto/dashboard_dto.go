package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard. Los campos opcionales dependen del rol.
type DashboardSummaryDTO struct {
	Role string `json:"role"`

	TotalItems   int `json:"total_items"`
	LowStock     int `json:"low_stock"`
	OutOfStock   int `json:"out_of_stock"`
	ExpiringSoon int `json:"expiring_soon"`
	Expired      int `json:"expired"`

	// Solo admin/staff
	TotalStockValue *decimal.Decimal   `json:"total_stock_value,omitempty"`
	RecentMovements []MovementResponse `json:"recent_movements,omitempty"`

	// Top 5 alertas (agotados primero)
	TopAlerts []AlertDTO `json:"top_alerts"`

	// Solo vet: medicamentos por vencer
	ExpiringMedicines []ItemStatusResponse `json:"expiring_medicines,omitempty"`
}

// SupplierBreakdownDTO fila del resumen por proveedor.
type SupplierBreakdownDTO struct {
	SupplierID string          `json:"supplier_id"`
	Name       string          `json:"name"`
	IsActive   bool            `json:"is_active"`
	Items      int             `json:"items"`
	Units      int             `json:"units"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// SupplierSummaryDTO resumen por proveedor con totales.
type SupplierSummaryDTO struct {
	TotalSuppliers  int                    `json:"total_suppliers"`
	ActiveSuppliers int                    `json:"active_suppliers"`
	TotalItems      int                    `json:"total_items"`
	TotalValue      decimal.Decimal        `json:"total_value"`
	Suppliers       []SupplierBreakdownDTO `json:"suppliers"`
}

// CategoryBreakdownDTO fila del desglose por categoría (reporte PDF).
type CategoryBreakdownDTO struct {
	Category   string          `json:"category"`
	Items      int             `json:"items"`
	Units      int             `json:"units"`
	TotalValue decimal.Decimal `json:"total_value"`
}
