package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawsitive-care/inventory-api/internal/application/dto"
	appinv "github.com/pawsitive-care/inventory-api/internal/application/inventory"
	"github.com/pawsitive-care/inventory-api/internal/domain/inventory"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":           "0,00",
		"999.5":       "999,50",
		"25000":       "25.000,00",
		"1234567.891": "1.234.567,89",
		"-1500":       "-1.500,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateStockReport_ProducePDF(t *testing.T) {
	exp := "2026-07-01"
	data := appinv.StockReportData{
		Title:       "Pawsitive Care",
		GeneratedAt: time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC),
		TotalItems:  3,
		LowStock:    1,
		OutOfStock:  1,
		TotalValue:  decimal.RequireFromString("230"),
		Categories: []dto.CategoryBreakdownDTO{
			{Category: "FOOD", Items: 1, Units: 10, TotalValue: decimal.RequireFromString("200")},
		},
		Alerts: []dto.AlertDTO{{ItemStatusResponse: dto.ItemStatusResponse{
			SKU: "MED-1", Name: "Vacuna", StockStatus: inventory.StockOutOfStock, ExpiryDate: &exp,
		}}},
	}

	out, err := NewMarotoPDFGenerator("Pawsitive Care").GenerateStockReport(data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
