package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pawsitive-care/inventory-api/internal/domain/inventory"
)

func TestClassifyStock_Limites(t *testing.T) {
	cases := []struct {
		qty, threshold int
		want           string
	}{
		{0, 5, inventory.StockOutOfStock},
		{1, 5, inventory.StockLow},
		{5, 5, inventory.StockLow},
		{6, 5, inventory.StockNormal},
		{0, 0, inventory.StockOutOfStock},
		{1, 0, inventory.StockNormal},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, inventory.ClassifyStock(c.qty, c.threshold), "qty=%d umbral=%d", c.qty, c.threshold)
	}
}

func TestClassifyExpiry_Ventana(t *testing.T) {
	today := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	day := func(offset int) *time.Time {
		d := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
		return &d
	}

	assert.Equal(t, inventory.ExpiryNotExpiring, inventory.ClassifyExpiry(nil, today, 30))
	assert.Equal(t, inventory.ExpiryExpired, inventory.ClassifyExpiry(day(-1), today, 30))
	assert.Equal(t, inventory.ExpiringSoon, inventory.ClassifyExpiry(day(0), today, 30), "vence hoy: aún no vencido")
	assert.Equal(t, inventory.ExpiringSoon, inventory.ClassifyExpiry(day(30), today, 30))
	assert.Equal(t, inventory.ExpiryNotExpiring, inventory.ClassifyExpiry(day(31), today, 30))
}

func TestClassifier_Idempotente(t *testing.T) {
	c := inventory.NewClassifier(30)
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.Now = func() time.Time { return fixed }
	exp := fixed.AddDate(0, 0, 10)

	s1, e1 := c.Status(3, 5, &exp)
	s2, e2 := c.Status(3, 5, &exp)
	assert.Equal(t, s1, s2)
	assert.Equal(t, e1, e2)
	assert.Equal(t, inventory.StockLow, s1)
	assert.Equal(t, inventory.ExpiringSoon, e1)
}

func TestNewClassifier_VentanaNegativaUsaDefecto(t *testing.T) {
	assert.Equal(t, inventory.DefaultExpiryDays, inventory.NewClassifier(-1).WindowDays)
	assert.Equal(t, 0, inventory.NewClassifier(0).WindowDays)
}

func TestNeedsAttention(t *testing.T) {
	assert.False(t, inventory.NeedsAttention(inventory.StockNormal, inventory.ExpiryNotExpiring))
	assert.True(t, inventory.NeedsAttention(inventory.StockLow, inventory.ExpiryNotExpiring))
	assert.True(t, inventory.NeedsAttention(inventory.StockNormal, inventory.ExpiryExpired))
}
