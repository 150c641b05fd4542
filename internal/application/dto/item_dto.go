package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un artículo. SKU vacío se genera; InitialQuantity se registra como restock.
type CreateItemRequest struct {
	SKU              string          `json:"sku" validate:"omitempty,max=50"`
	Name             string          `json:"name" validate:"required,min=1,max=200"`
	Description      string          `json:"description"`
	Category         string          `json:"category" validate:"required"`
	Unit             string          `json:"unit" validate:"required"`
	InitialQuantity  int             `json:"initial_quantity"`
	ReorderThreshold int             `json:"reorder_threshold"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	ExpiryDate       *string         `json:"expiry_date,omitempty"` // YYYY-MM-DD
	SupplierID       string          `json:"supplier_id,omitempty"`
}

// UpdateItemRequest actualización parcial; la cantidad no se edita aquí.
type UpdateItemRequest struct {
	Name             *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description      *string          `json:"description"`
	Category         *string          `json:"category"`
	Unit             *string          `json:"unit"`
	ReorderThreshold *int             `json:"reorder_threshold"`
	UnitPrice        *decimal.Decimal `json:"unit_price"`
	ExpiryDate       *string          `json:"expiry_date"` // "" elimina la fecha
	SupplierID       *string          `json:"supplier_id"` // "" elimina el proveedor
	IsActive         *bool            `json:"is_active"`
}

// ItemListQuery filtros de GET /api/items.
type ItemListQuery struct {
	PageRequest
	Search          string `query:"q"`
	Category        string `query:"category"`
	LowStock        bool   `query:"low_stock"`
	Expired         bool   `query:"expired"`
	IncludeInactive bool   `query:"include_inactive"`
	Sort            string `query:"sort"`  // name|sku|quantity|unit_price|expiry_date
	Order           string `query:"order"` // asc|desc
}

// ItemResponse salida de un artículo con estados derivados.
type ItemResponse struct {
	ID               string          `json:"id"`
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Category         string          `json:"category"`
	Unit             string          `json:"unit"`
	Quantity         int             `json:"quantity"`
	ReorderThreshold int             `json:"reorder_threshold"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	StockValue       decimal.Decimal `json:"stock_value"`
	ExpiryDate       *string         `json:"expiry_date,omitempty"`
	SupplierID       string          `json:"supplier_id,omitempty"`
	StockStatus      string          `json:"stock_status"`
	ExpiryStatus     string          `json:"expiry_status"`
	LastRestockedAt  *time.Time      `json:"last_restocked_at,omitempty"`
	IsActive         bool            `json:"is_active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ItemListResponse lista paginada de artículos.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
