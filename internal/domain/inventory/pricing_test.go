package inventory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawsitive-care/inventory-api/internal/domain"
	"github.com/pawsitive-care/inventory-api/internal/domain/inventory"
)

var ten = decimal.RequireFromString("10.00")

// ── Volumen ───────────────────────────────────────────────────────────────────

func TestQuote_Bulk_SobreElCorte(t *testing.T) {
	q, err := inventory.DefaultPricingRules().Quote(inventory.QuoteInput{
		Policy: inventory.PolicyBulk, BasePrice: ten, Quantity: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, "540", q.Total.String())
	assert.Equal(t, "60", q.Discount.String())
	assert.Equal(t, "600", q.Subtotal.String())
}

func TestQuote_Bulk_BajoElCorte(t *testing.T) {
	q, err := inventory.DefaultPricingRules().Quote(inventory.QuoteInput{
		Policy: inventory.PolicyBulk, BasePrice: ten, Quantity: 40,
	})
	require.NoError(t, err)
	assert.True(t, q.Total.Equal(decimal.NewFromInt(400)), "total=%s", q.Total)
	assert.True(t, q.Discount.IsZero())
}

func TestQuote_Bulk_TramoMasAlto(t *testing.T) {
	rules := inventory.DefaultPricingRules()
	rules.BulkTiers = []inventory.DiscountTier{
		{MinQuantity: 100, Rate: decimal.RequireFromString("0.20")},
		{MinQuantity: 10, Rate: decimal.RequireFromString("0.05")},
		{MinQuantity: 50, Rate: decimal.RequireFromString("0.15")},
	}
	q, err := rules.Quote(inventory.QuoteInput{Policy: inventory.PolicyBulk, BasePrice: ten, Quantity: 50})
	require.NoError(t, err)
	assert.True(t, q.DiscountRate.Equal(decimal.RequireFromString("0.15")))
	assert.True(t, q.Total.Equal(decimal.NewFromInt(425)))
}

// ── Otras políticas ───────────────────────────────────────────────────────────

func TestQuote_StandardYPreferido(t *testing.T) {
	rules := inventory.DefaultPricingRules()

	std, err := rules.Quote(inventory.QuoteInput{Policy: inventory.PolicyStandard, BasePrice: ten, Quantity: 3})
	require.NoError(t, err)
	assert.True(t, std.Total.Equal(decimal.NewFromInt(30)))

	pref, err := rules.Quote(inventory.QuoteInput{Policy: inventory.PolicyPreferred, BasePrice: ten, Quantity: 3})
	require.NoError(t, err)
	assert.True(t, pref.Total.Equal(decimal.NewFromInt(27)))
}

func TestQuote_PoliticaVaciaEsStandard(t *testing.T) {
	q, err := inventory.DefaultPricingRules().Quote(inventory.QuoteInput{BasePrice: ten, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, inventory.PolicyStandard, q.Policy)
}

func TestQuote_Clearance_PorDiasAlVencimiento(t *testing.T) {
	rules := inventory.DefaultPricingRules()
	today := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		days int
		want string
	}{
		{2, "0.75"},
		{3, "0.75"},
		{5, "0.5"},
		{10, "0.25"},
		{20, "0.1"},
		{45, "0"},
		{-2, "0.75"},
	}
	for _, c := range cases {
		exp := today.AddDate(0, 0, c.days)
		q, err := rules.Quote(inventory.QuoteInput{
			Policy: inventory.PolicyClearance, BasePrice: ten, Quantity: 1, ExpiryDate: &exp, Today: today,
		})
		require.NoError(t, err)
		assert.True(t, q.DiscountRate.Equal(decimal.RequireFromString(c.want)), "días=%d tasa=%s", c.days, q.DiscountRate)
	}
}

func TestQuote_Clearance_SinVencimientoSinDescuento(t *testing.T) {
	q, err := inventory.DefaultPricingRules().Quote(inventory.QuoteInput{
		Policy: inventory.PolicyClearance, BasePrice: ten, Quantity: 2, Today: time.Now(),
	})
	require.NoError(t, err)
	assert.True(t, q.Total.Equal(decimal.NewFromInt(20)))
}

func TestQuote_RedondeoADosDecimales(t *testing.T) {
	q, err := inventory.DefaultPricingRules().Quote(inventory.QuoteInput{
		Policy: inventory.PolicyPreferred, BasePrice: decimal.RequireFromString("3.33"), Quantity: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "0.33", q.Discount.StringFixed(2))
	assert.Equal(t, "3.00", q.Total.StringFixed(2))
}

// ── Errores ───────────────────────────────────────────────────────────────────

func TestQuote_EntradasInvalidas(t *testing.T) {
	rules := inventory.DefaultPricingRules()

	_, err := rules.Quote(inventory.QuoteInput{Policy: inventory.PolicyStandard, BasePrice: ten.Neg(), Quantity: 1})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = rules.Quote(inventory.QuoteInput{Policy: inventory.PolicyStandard, BasePrice: ten, Quantity: -1})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = rules.Quote(inventory.QuoteInput{Policy: "seasonal", BasePrice: ten, Quantity: 1})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
