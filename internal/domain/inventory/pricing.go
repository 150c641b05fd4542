package inventory

import (
	"fmt"
	"sort"
	"time"

	"github.com/pawsitive-care/inventory-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Políticas de precio.
const (
	PolicyStandard  = "standard"
	PolicyBulk      = "bulk"
	PolicyPreferred = "preferred"
	PolicyClearance = "clearance"
)

// Policies lista las políticas soportadas en orden de presentación.
var Policies = []string{PolicyStandard, PolicyBulk, PolicyPreferred, PolicyClearance}

// DiscountTier descuento aplicable desde MinQuantity unidades (inclusive).
type DiscountTier struct {
	MinQuantity int
	Rate        decimal.Decimal // 0.10 = 10 %
}

// ClearanceStep descuento cuando faltan MaxDays días o menos para el vencimiento.
type ClearanceStep struct {
	MaxDays int
	Rate    decimal.Decimal
}

// PricingRules parámetros de las políticas; se cargan desde configuración.
type PricingRules struct {
	BulkTiers         []DiscountTier
	PreferredRate     decimal.Decimal
	ClearanceSchedule []ClearanceStep
}

// DefaultPricingRules: bulk 50 u / 10 %, preferido 10 %, liquidación por vencimiento 30/14/7/3 días.
func DefaultPricingRules() PricingRules {
	return PricingRules{
		BulkTiers:     []DiscountTier{{MinQuantity: 50, Rate: decimal.RequireFromString("0.10")}},
		PreferredRate: decimal.RequireFromString("0.10"),

		ClearanceSchedule: []ClearanceStep{
			{MaxDays: 3, Rate: decimal.RequireFromString("0.75")},
			{MaxDays: 7, Rate: decimal.RequireFromString("0.50")},
			{MaxDays: 14, Rate: decimal.RequireFromString("0.25")},
			{MaxDays: 30, Rate: decimal.RequireFromString("0.10")},
		},
	}
}

// QuoteInput entrada de cotización. ExpiryDate y Today solo aplican a clearance.
type QuoteInput struct {
	Policy     string
	BasePrice  decimal.Decimal
	Quantity   int
	ExpiryDate *time.Time
	Today      time.Time
}

// Quote resultado: Total = Subtotal - Discount, todo redondeado a 2 decimales.
type Quote struct {
	Policy       string
	BasePrice    decimal.Decimal
	Quantity     int
	Subtotal     decimal.Decimal
	DiscountRate decimal.Decimal
	Discount     decimal.Decimal
	Total        decimal.Decimal
}

// Quote calcula el precio total según la política. Entradas negativas o política desconocida -> ErrInvalidInput.
func (r PricingRules) Quote(in QuoteInput) (*Quote, error) {
	if in.BasePrice.IsNegative() {
		return nil, fmt.Errorf("%w: el precio base no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
	}

	var rate decimal.Decimal
	switch in.Policy {
	case PolicyStandard, "":
		in.Policy = PolicyStandard
		rate = decimal.Zero
	case PolicyBulk:
		rate = bulkRate(r.BulkTiers, in.Quantity)
	case PolicyPreferred:
		rate = r.PreferredRate
	case PolicyClearance:
		if in.ExpiryDate != nil {
			rate = clearanceRate(r.ClearanceSchedule, DaysUntil(*in.ExpiryDate, in.Today))
		}
	default:
		return nil, fmt.Errorf("%w: política de precio desconocida %q", domain.ErrInvalidInput, in.Policy)
	}

	subtotal := in.BasePrice.Mul(decimal.NewFromInt(int64(in.Quantity)))
	discount := subtotal.Mul(rate).Round(2)
	return &Quote{
		Policy:       in.Policy,
		BasePrice:    in.BasePrice,
		Quantity:     in.Quantity,
		Subtotal:     subtotal.Round(2),
		DiscountRate: rate,
		Discount:     discount,
		Total:        subtotal.Round(2).Sub(discount),
	}, nil
}

// bulkRate aplica el tramo de mayor MinQuantity alcanzado.
func bulkRate(tiers []DiscountTier, qty int) decimal.Decimal {
	best := -1
	rate := decimal.Zero
	for _, t := range tiers {
		if qty >= t.MinQuantity && t.MinQuantity > best {
			best = t.MinQuantity
			rate = t.Rate
		}
	}
	return rate
}

// clearanceRate aplica el tramo más corto que cubre los días restantes. Vencido cuenta como el tramo más corto.
func clearanceRate(schedule []ClearanceStep, days int) decimal.Decimal {
	s := make([]ClearanceStep, len(schedule))
	copy(s, schedule)
	sort.Slice(s, func(i, j int) bool { return s[i].MaxDays < s[j].MaxDays })
	for _, t := range s {
		if days <= t.MaxDays {
			return t.Rate
		}
	}
	return decimal.Zero
}

// PolicyDescription texto corto para GET /api/pricing/policies.
func (r PricingRules) PolicyDescription(policy string) string {
	switch policy {
	case PolicyStandard:
		return "Precio base sin descuentos"
	case PolicyBulk:
		s := "Descuento por volumen:"
		for _, t := range r.BulkTiers {
			s += fmt.Sprintf(" %d+ u %s%%;", t.MinQuantity, t.Rate.Mul(decimal.NewFromInt(100)).String())
		}
		return s
	case PolicyPreferred:
		return fmt.Sprintf("Cliente preferido: %s%% de descuento", r.PreferredRate.Mul(decimal.NewFromInt(100)).String())
	case PolicyClearance:
		return "Liquidación por cercanía al vencimiento"
	}
	return ""
}
