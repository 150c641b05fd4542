package purchasing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawsitive-care/inventory-api/internal/application/dto"
	appinv "github.com/pawsitive-care/inventory-api/internal/application/inventory"
	"github.com/pawsitive-care/inventory-api/internal/application/purchasing"
	"github.com/pawsitive-care/inventory-api/internal/domain"
	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/internal/domain/inventory"
	"github.com/pawsitive-care/inventory-api/internal/infrastructure/memory"
	"github.com/pawsitive-care/inventory-api/pkg/logger"
)

type alertSink struct{ events []entity.AlertEvent }

func (s *alertSink) Name() string { return "sink" }
func (s *alertSink) Notify(_ context.Context, e entity.AlertEvent) error {
	s.events = append(s.events, e)
	return nil
}

type env struct {
	store    *memory.Store
	uc       *purchasing.UseCase
	sink     *alertSink
	supplier *entity.Supplier
	gauze    *entity.InventoryItem
	vaccine  *entity.InventoryItem
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	c := inventory.NewClassifier(30)
	c.Now = func() time.Time { return time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC) }
	hub := appinv.NewAlertHub(logger.Nop())
	sink := &alertSink{}
	hub.Subscribe(sink)
	mov := appinv.NewMovementUseCase(tx, c, hub)

	sup := &entity.Supplier{ID: uuid.New().String(), Name: "VetPharma", IsActive: true}
	require.NoError(t, store.Suppliers().Create(ctx, sup))

	mk := func(name string, price string) *entity.InventoryItem {
		it := &entity.InventoryItem{
			ID: uuid.New().String(), SKU: inventory.GenerateSKU(entity.CategorySupply), Name: name,
			Category: entity.CategorySupply, Unit: entity.UnitPacks, ReorderThreshold: 5,
			UnitPrice: decimal.RequireFromString(price), IsActive: true,
		}
		require.NoError(t, store.Items().Create(ctx, it))
		return it
	}
	return &env{
		store:    store,
		uc:       purchasing.NewUseCase(tx, store.PurchaseOrders(), store.Suppliers(), mov, c, nil),
		sink:     sink,
		supplier: sup,
		gauze:    mk("Gasas", "1.50"),
		vaccine:  mk("Vacuna", "12.00"),
	}
}

func (e *env) order(t *testing.T) *dto.PurchaseOrderResponse {
	t.Helper()
	price := decimal.RequireFromString("11.00")
	po, err := e.uc.Create(context.Background(), "staff-1", dto.CreatePurchaseOrderRequest{
		SupplierID: e.supplier.ID,
		Items: []dto.PurchaseOrderItemRequest{
			{ItemID: e.gauze.ID, QuantityOrdered: 10},
			{ItemID: e.vaccine.ID, QuantityOrdered: 4, UnitPrice: &price},
		},
	})
	require.NoError(t, err)
	return po
}

func (e *env) advance(t *testing.T, id string, statuses ...string) {
	t.Helper()
	for _, s := range statuses {
		_, err := e.uc.ChangeStatus(context.Background(), id, s)
		require.NoError(t, err)
	}
}

func (e *env) quantity(t *testing.T, id string) int {
	t.Helper()
	it, err := e.store.Items().GetByID(context.Background(), id)
	require.NoError(t, err)
	return it.Quantity
}

// ── Create ────────────────────────────────────────────────────────────────────

func TestCreate_TotalesYNumero(t *testing.T) {
	e := newEnv(t)
	po := e.order(t)

	assert.Equal(t, entity.POStatusDraft, po.Status)
	assert.Regexp(t, `^\d{8}-[0-9A-F]{6}$`, po.OrderNumber)
	require.Len(t, po.Items, 2)
	assert.True(t, po.Items[0].UnitPrice.Equal(decimal.RequireFromString("1.50")))
	assert.True(t, po.Items[0].TotalPrice.Equal(decimal.NewFromInt(15)))
	assert.True(t, po.TotalAmount.Equal(decimal.NewFromInt(59)))
}

func TestCreate_Validaciones(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.uc.Create(ctx, "u", dto.CreatePurchaseOrderRequest{SupplierID: e.supplier.ID})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = e.uc.Create(ctx, "u", dto.CreatePurchaseOrderRequest{
		SupplierID: e.supplier.ID,
		Items:      []dto.PurchaseOrderItemRequest{{ItemID: "no-existe", QuantityOrdered: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = e.uc.Create(ctx, "u", dto.CreatePurchaseOrderRequest{
		SupplierID: e.supplier.ID,
		Items:      []dto.PurchaseOrderItemRequest{{ItemID: e.gauze.ID, QuantityOrdered: 0}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	e.supplier.IsActive = false
	require.NoError(t, e.store.Suppliers().Update(ctx, e.supplier))
	_, err = e.uc.Create(ctx, "u", dto.CreatePurchaseOrderRequest{
		SupplierID: e.supplier.ID,
		Items:      []dto.PurchaseOrderItemRequest{{ItemID: e.gauze.ID, QuantityOrdered: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCreate_CantidadFueraDeRango(t *testing.T) {
	e := newEnv(t)
	_, err := e.uc.Create(context.Background(), "u", dto.CreatePurchaseOrderRequest{
		SupplierID: e.supplier.ID,
		Items:      []dto.PurchaseOrderItemRequest{{ItemID: e.gauze.ID, QuantityOrdered: entity.MaxQuantity + 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// ── Estados ───────────────────────────────────────────────────────────────────

func TestChangeStatus_Transiciones(t *testing.T) {
	e := newEnv(t)
	po := e.order(t)

	_, err := e.uc.ChangeStatus(context.Background(), po.ID, entity.POStatusOrdered)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "DRAFT no salta a ORDERED")

	e.advance(t, po.ID, entity.POStatusPending, entity.POStatusApproved)
	_, err = e.uc.ChangeStatus(context.Background(), po.ID, entity.POStatusReceived)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "RECEIVED solo por recepción")

	out, err := e.uc.ChangeStatus(context.Background(), po.ID, "cancelled")
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusCancelled, out.Status)
}

// ── Recepción ─────────────────────────────────────────────────────────────────

func TestReceive_ParcialYCompleta(t *testing.T) {
	e := newEnv(t)
	po := e.order(t)
	e.advance(t, po.ID, entity.POStatusPending, entity.POStatusApproved, entity.POStatusOrdered)
	gauzeLine, vaccineLine := po.Items[0].ID, po.Items[1].ID

	res, err := e.uc.Receive(context.Background(), po.ID, "staff-1", dto.ReceiveRequest{
		Lines: []dto.ReceiveLineRequest{{LineID: gauzeLine, Quantity: 6}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusOrdered, res.Order.Status)
	assert.Equal(t, 6, e.quantity(t, e.gauze.ID))
	require.Len(t, res.Movements, 1)
	assert.Equal(t, entity.ReasonRestock, res.Movements[0].Reason)
	assert.Equal(t, "OC "+po.OrderNumber, res.Movements[0].Note)

	res, err = e.uc.Receive(context.Background(), po.ID, "staff-1", dto.ReceiveRequest{
		Lines: []dto.ReceiveLineRequest{{LineID: gauzeLine, Quantity: 4}, {LineID: vaccineLine, Quantity: 4}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusReceived, res.Order.Status)
	assert.Equal(t, 10, e.quantity(t, e.gauze.ID))
	assert.Equal(t, 4, e.quantity(t, e.vaccine.ID))

	got, err := e.uc.GetByID(context.Background(), po.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Items[0].QuantityReceived)
	assert.Equal(t, entity.POStatusReceived, got.Status)

	// out_of_stock -> normal (gasas) y out_of_stock -> low_stock (vacuna)
	assert.Len(t, e.sink.events, 2)
}

func TestReceive_ExcesoRevierteTodo(t *testing.T) {
	e := newEnv(t)
	po := e.order(t)
	e.advance(t, po.ID, entity.POStatusPending, entity.POStatusApproved)

	_, err := e.uc.Receive(context.Background(), po.ID, "u", dto.ReceiveRequest{
		Lines: []dto.ReceiveLineRequest{{LineID: po.Items[0].ID, Quantity: 3}, {LineID: po.Items[1].ID, Quantity: 5}},
	})
	require.True(t, errors.Is(err, domain.ErrInvalidInput))

	assert.Equal(t, 0, e.quantity(t, e.gauze.ID), "la primera línea también se revierte")
	got, err := e.uc.GetByID(context.Background(), po.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Items[0].QuantityReceived)
	chain, err := e.store.Movements().ListChain(context.Background(), e.gauze.ID)
	require.NoError(t, err)
	assert.Empty(t, chain)
	assert.Empty(t, e.sink.events)
}

func TestReceive_CantidadFueraDeRango(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	po := e.order(t)
	e.advance(t, po.ID, entity.POStatusPending, entity.POStatusApproved)

	_, err := e.uc.Receive(ctx, po.ID, "u", dto.ReceiveRequest{
		Lines: []dto.ReceiveLineRequest{{LineID: po.Items[0].ID, Quantity: entity.MaxQuantity + 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	// El stock resultante tampoco puede pasar del máximo
	require.NoError(t, e.store.Items().UpdateQuantity(ctx, e.gauze.ID, 0, entity.MaxQuantity-2, nil))
	_, err = e.uc.Receive(ctx, po.ID, "u", dto.ReceiveRequest{
		Lines: []dto.ReceiveLineRequest{{LineID: po.Items[0].ID, Quantity: 3}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, entity.MaxQuantity-2, e.quantity(t, e.gauze.ID))
	got, err := e.uc.GetByID(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Items[0].QuantityReceived)
}

func TestReceive_SoloAprobadasUOrdenadas(t *testing.T) {
	e := newEnv(t)
	po := e.order(t)

	_, err := e.uc.Receive(context.Background(), po.ID, "u", dto.ReceiveRequest{
		Lines: []dto.ReceiveLineRequest{{LineID: po.Items[0].ID, Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = e.uc.Receive(context.Background(), "no-existe", "u", dto.ReceiveRequest{
		Lines: []dto.ReceiveLineRequest{{LineID: "x", Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestList_FiltraPorEstado(t *testing.T) {
	e := newEnv(t)
	a := e.order(t)
	e.order(t)
	e.advance(t, a.ID, entity.POStatusPending)

	list, err := e.uc.List(context.Background(), dto.PurchaseOrderListQuery{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, a.ID, list.Items[0].ID)
	assert.Equal(t, 1, list.Page.Total)
}
