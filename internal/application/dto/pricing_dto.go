package dto

import "github.com/shopspring/decimal"

// QuoteRequest body para POST /api/pricing/quote. Con ItemID se usa su precio y vencimiento;
// si no, BasePrice es obligatorio.
type QuoteRequest struct {
	Policy    string           `json:"policy"`
	ItemID    string           `json:"item_id,omitempty"`
	BasePrice *decimal.Decimal `json:"base_price,omitempty"`
	Quantity  int              `json:"quantity"`
}

// QuoteResponse resultado de la cotización, redondeado a 2 decimales.
type QuoteResponse struct {
	Policy       string          `json:"policy"`
	ItemID       string          `json:"item_id,omitempty"`
	BasePrice    decimal.Decimal `json:"base_price"`
	Quantity     int             `json:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	DiscountRate decimal.Decimal `json:"discount_rate"`
	Discount     decimal.Decimal `json:"discount"`
	Total        decimal.Decimal `json:"total"`
}

// PricingPolicyDTO política disponible.
type PricingPolicyDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
