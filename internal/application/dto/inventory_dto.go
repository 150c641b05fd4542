package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementRequest body para POST /api/inventory/movements.
// ExpectedQuantity: cantidad que el cliente vio por última vez; si difiere se rechaza con 409.
// TargetQuantity: conteo físico; reemplaza delta y usa el motivo correction.
type MovementRequest struct {
	ItemID           string `json:"item_id" validate:"required,uuid"`
	Delta            int    `json:"delta"`
	Reason           string `json:"reason" validate:"required_without=TargetQuantity"`
	Note             string `json:"note,omitempty"`
	ExpectedQuantity *int   `json:"expected_quantity,omitempty"`
	TargetQuantity   *int   `json:"target_quantity,omitempty" validate:"omitempty,min=0"`
}

// MovementBatchRequest body para POST /api/inventory/movements/batch.
type MovementBatchRequest struct {
	Movements []MovementRequest `json:"movements" validate:"required,min=1,max=100"`
}

// MovementBatchLine resultado de una línea del lote; Index es la posición en el request.
type MovementBatchLine struct {
	Index   int                     `json:"index"`
	Success bool                    `json:"success"`
	Result  *MovementResultResponse `json:"result,omitempty"`
	Error   *ErrorResponse          `json:"error,omitempty"`
}

// MovementBatchResponse totales del lote y detalle por línea.
type MovementBatchResponse struct {
	Total      int                 `json:"total"`
	Successful int                 `json:"successful"`
	Failed     int                 `json:"failed"`
	Results    []MovementBatchLine `json:"results"`
}

// MovementResponse una entrada del ledger.
type MovementResponse struct {
	ID             string    `json:"id"`
	ItemID         string    `json:"item_id"`
	SKU            string    `json:"sku,omitempty"`
	Type           string    `json:"type"`
	Delta          int       `json:"delta"`
	QuantityBefore int       `json:"quantity_before"`
	QuantityAfter  int       `json:"quantity_after"`
	Reason         string    `json:"reason"`
	Note           string    `json:"note,omitempty"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// MovementResultResponse artículo actualizado + movimiento creado.
// Movement es nil cuando un conteo físico coincide con la cantidad registrada.
type MovementResultResponse struct {
	Item     ItemResponse      `json:"item"`
	Movement *MovementResponse `json:"movement,omitempty"`
}

// MovementListResponse historial paginado de un artículo.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// MovementReportQuery filtros de GET /api/inventory/movements.
type MovementReportQuery struct {
	ItemID string `query:"item_id"`
	Type   string `query:"type"`
	From   string `query:"from"` // YYYY-MM-DD
	To     string `query:"to"`   // YYYY-MM-DD inclusive
}

// MovementReportResponse hasta 100 movimientos más conteo por tipo.
type MovementReportResponse struct {
	Movements []MovementResponse `json:"movements"`
	Counts    map[string]int     `json:"counts"`
}

// ItemStatusResponse estado derivado de un artículo.
type ItemStatusResponse struct {
	ItemID           string  `json:"item_id"`
	SKU              string  `json:"sku"`
	Name             string  `json:"name"`
	Quantity         int     `json:"quantity"`
	ReorderThreshold int     `json:"reorder_threshold"`
	StockStatus      string  `json:"stock_status"`
	ExpiryDate       *string `json:"expiry_date,omitempty"`
	ExpiryStatus     string  `json:"expiry_status"`
}

// AlertDTO artículo activo que requiere atención.
type AlertDTO struct {
	ItemStatusResponse
	Category string `json:"category"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un artículo en o bajo su umbral.
type ReplenishmentSuggestionDTO struct {
	ItemID             string          `json:"item_id"`
	SKU                string          `json:"sku"`
	Name               string          `json:"name"`
	CurrentStock       int             `json:"current_stock"`
	ReorderThreshold   int             `json:"reorder_threshold"`
	IdealStock         int             `json:"ideal_stock"`         // ceil(umbral * 1.5)
	SuggestedOrderQty  int             `json:"suggested_order_qty"` // IdealStock - CurrentStock
	UnitPrice          decimal.Decimal `json:"unit_price"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"`
	SupplierID         string          `json:"supplier_id,omitempty"`
	SupplierName       string          `json:"supplier_name,omitempty"`
	Priority           int             `json:"priority"` // 1 = más urgente
}

// LedgerIssueDTO hallazgo de la reconciliación.
type LedgerIssueDTO struct {
	Type       string `json:"type"`
	MovementID string `json:"movement_id,omitempty"`
	Expected   int    `json:"expected"`
	Actual     int    `json:"actual"`
	Details    string `json:"details"`
}

// LedgerReportDTO reporte por artículo con problemas.
type LedgerReportDTO struct {
	ItemID         string           `json:"item_id"`
	SKU            string           `json:"sku"`
	StoredQuantity int              `json:"stored_quantity"`
	LedgerQuantity int              `json:"ledger_quantity"`
	MovementCount  int              `json:"movement_count"`
	DeltaSum       int              `json:"delta_sum"`
	Issues         []LedgerIssueDTO `json:"issues"`
}

// ReconcileResponse resumen de GET /api/inventory/reconcile.
type ReconcileResponse struct {
	CheckedItems int               `json:"checked_items"`
	Inconsistent int               `json:"inconsistent"`
	Skipped      int               `json:"skipped"`
	Reports      []LedgerReportDTO `json:"reports"`
	GeneratedAt  time.Time         `json:"generated_at"`
}
