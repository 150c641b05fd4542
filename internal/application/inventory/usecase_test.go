package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawsitive-care/inventory-api/internal/application/dto"
	appinv "github.com/pawsitive-care/inventory-api/internal/application/inventory"
	"github.com/pawsitive-care/inventory-api/internal/domain"
	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
)

// ── Lote de movimientos ───────────────────────────────────────────────────────

func TestApplyBatch_CadaLineaIndependiente(t *testing.T) {
	f := newFixture(t)
	a := f.seedItem(t, "Amoxicilina", 10, 5)
	b := f.seedItem(t, "Gasas", 2, 1)

	out, err := f.movements.ApplyBatch(context.Background(), "u1", dto.MovementBatchRequest{Movements: []dto.MovementRequest{
		{ItemID: a.ID, Delta: -3, Reason: entity.ReasonSale},
		{ItemID: b.ID, Delta: -5, Reason: entity.ReasonSale},
		{ItemID: a.ID, Delta: 1, Reason: "regalo"},
		{ItemID: a.ID, TargetQuantity: intPtr(20)},
	}})
	require.NoError(t, err)

	assert.Equal(t, 4, out.Total)
	assert.Equal(t, 2, out.Successful)
	assert.Equal(t, 2, out.Failed)
	require.Len(t, out.Results, 4)

	assert.True(t, out.Results[0].Success)
	require.NotNil(t, out.Results[0].Result)
	assert.Equal(t, 7, out.Results[0].Result.Item.Quantity)

	assert.False(t, out.Results[1].Success)
	require.NotNil(t, out.Results[1].Error)
	assert.Equal(t, "INSUFFICIENT_STOCK", out.Results[1].Error.Code)
	assert.Equal(t, 1, out.Results[1].Index)

	assert.Equal(t, "INVALID_REASON", out.Results[2].Error.Code)

	assert.True(t, out.Results[3].Success)
	assert.Equal(t, 13, out.Results[3].Result.Movement.Delta)

	assert.Equal(t, 20, f.quantity(t, a.ID))
	assert.Equal(t, 2, f.quantity(t, b.ID))
	assert.Len(t, f.ledger(t, b.ID), 1)
}

func TestApplyBatch_VacioOExcedido(t *testing.T) {
	f := newFixture(t)
	item := f.seedItem(t, "Amoxicilina", 10, 5)

	_, err := f.movements.ApplyBatch(context.Background(), "u1", dto.MovementBatchRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	lines := make([]dto.MovementRequest, appinv.MaxBatchLines+1)
	for i := range lines {
		lines[i] = dto.MovementRequest{ItemID: item.ID, Delta: 1, Reason: entity.ReasonRestock}
	}
	_, err = f.movements.ApplyBatch(context.Background(), "u1", dto.MovementBatchRequest{Movements: lines})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 10, f.quantity(t, item.ID))
}

func TestApplyBatch_ContextoCanceladoCorta(t *testing.T) {
	f := newFixture(t)
	item := f.seedItem(t, "Amoxicilina", 10, 5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.movements.ApplyBatch(ctx, "u1", dto.MovementBatchRequest{Movements: []dto.MovementRequest{
		{ItemID: item.ID, Delta: -1, Reason: entity.ReasonSale},
	}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 10, f.quantity(t, item.ID))
}
