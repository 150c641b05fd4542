package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
	"github.com/pawsitive-care/inventory-api/internal/infrastructure/memory"
)

func skus(items []*entity.InventoryItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.SKU)
	}
	return out
}

// ── Orden ─────────────────────────────────────────────────────────────────────

func TestList_OrdenPorVencimientoSinFechaAlFinal(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	base := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	add := func(sku string, days *int, qty int) {
		it := &entity.InventoryItem{
			ID: sku, SKU: sku, Name: "Artículo", Category: entity.CategoryMedicine, Unit: entity.UnitBoxes,
			Quantity: qty, UnitPrice: decimal.NewFromInt(1), IsActive: true,
		}
		if days != nil {
			d := base.AddDate(0, 0, *days)
			it.ExpiryDate = &d
		}
		require.NoError(t, store.Items().Create(ctx, it))
	}
	in := func(n int) *int { return &n }
	add("MED-E", nil, 1)
	add("MED-D", in(30), 5)
	add("MED-A", in(10), 5)
	add("MED-C", in(30), 2)
	add("MED-B", nil, 9)

	asc, _, err := store.Items().List(ctx, repository.ItemFilter{SortBy: repository.SortByExpiryDate})
	require.NoError(t, err)
	assert.Equal(t, []string{"MED-A", "MED-C", "MED-D", "MED-B", "MED-E"}, skus(asc))

	desc, _, err := store.Items().List(ctx, repository.ItemFilter{SortBy: repository.SortByExpiryDate, SortDesc: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"MED-C", "MED-D", "MED-A", "MED-B", "MED-E"}, skus(desc))
}

func TestList_DescSoloInvierteLaColumnaPrincipal(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	for _, tc := range []struct {
		sku string
		qty int
	}{{"SUP-B", 5}, {"SUP-A", 5}, {"SUP-C", 9}} {
		require.NoError(t, store.Items().Create(ctx, &entity.InventoryItem{
			ID: tc.sku, SKU: tc.sku, Name: tc.sku, Category: entity.CategorySupply, Unit: entity.UnitPacks,
			Quantity: tc.qty, UnitPrice: decimal.Zero, IsActive: true,
		}))
	}

	desc, _, err := store.Items().List(ctx, repository.ItemFilter{SortBy: repository.SortByQuantity, SortDesc: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"SUP-C", "SUP-A", "SUP-B"}, skus(desc), "empate por sku ascendente")
}
