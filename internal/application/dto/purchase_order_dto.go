package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierID       string                     `json:"supplier_id" validate:"required,uuid"`
	ExpectedDelivery *string                    `json:"expected_delivery,omitempty"` // YYYY-MM-DD
	Notes            string                     `json:"notes,omitempty"`
	Items            []PurchaseOrderItemRequest `json:"items"`
}

// PurchaseOrderItemRequest línea de la orden. UnitPrice vacío toma el precio del artículo.
type PurchaseOrderItemRequest struct {
	ItemID          string           `json:"item_id"`
	QuantityOrdered int              `json:"quantity_ordered"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
}

// ChangeStatusRequest body para PATCH /api/purchase-orders/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// ReceiveRequest body para POST /api/purchase-orders/:id/receive.
type ReceiveRequest struct {
	Lines []ReceiveLineRequest `json:"lines"`
}

// ReceiveLineRequest cantidad recibida de una línea en esta entrega.
type ReceiveLineRequest struct {
	LineID   string `json:"line_id"`
	Quantity int    `json:"quantity"`
}

// PurchaseOrderListQuery filtros de GET /api/purchase-orders.
type PurchaseOrderListQuery struct {
	PageRequest
	Status     string `query:"status"`
	SupplierID string `query:"supplier_id"`
}

// PurchaseOrderResponse orden con sus líneas.
type PurchaseOrderResponse struct {
	ID               string                      `json:"id"`
	OrderNumber      string                      `json:"order_number"`
	SupplierID       string                      `json:"supplier_id"`
	Status           string                      `json:"status"`
	ExpectedDelivery *string                     `json:"expected_delivery,omitempty"`
	TotalAmount      decimal.Decimal             `json:"total_amount"`
	Notes            string                      `json:"notes,omitempty"`
	CreatedBy        string                      `json:"created_by"`
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
	Items            []PurchaseOrderItemResponse `json:"items"`
}

// PurchaseOrderItemResponse línea de la orden en respuestas.
type PurchaseOrderItemResponse struct {
	ID               string          `json:"id"`
	ItemID           string          `json:"item_id"`
	QuantityOrdered  int             `json:"quantity_ordered"`
	QuantityReceived int             `json:"quantity_received"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	TotalPrice       decimal.Decimal `json:"total_price"`
}

// PurchaseOrderListResponse lista paginada de órdenes.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// ReceiveResponse orden actualizada y movimientos de restock generados.
type ReceiveResponse struct {
	Order     PurchaseOrderResponse `json:"order"`
	Movements []MovementResponse    `json:"movements"`
}
