package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	appinv "github.com/pawsitive-care/inventory-api/internal/application/inventory"
	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/internal/domain/inventory"
	"github.com/pawsitive-care/inventory-api/internal/infrastructure/memory"
	"github.com/pawsitive-care/inventory-api/pkg/logger"
)

var testToday = time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)

// recorder suscriptor que guarda los eventos recibidos.
type recorder struct {
	mu     sync.Mutex
	events []entity.AlertEvent
	fail   bool
}

func (r *recorder) Name() string { return "recorder" }

func (r *recorder) Notify(_ context.Context, e entity.AlertEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	if r.fail {
		return errors.New("canal caído")
	}
	return nil
}

func (r *recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

func (r *recorder) Events() []entity.AlertEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.AlertEvent(nil), r.events...)
}

type fixture struct {
	store      *memory.Store
	tx         *memory.TxRunner
	classifier *inventory.Classifier
	hub        *appinv.AlertHub
	rec        *recorder
	movements  *appinv.MovementUseCase
	query      *appinv.QueryUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	c := inventory.NewClassifier(30)
	c.Now = func() time.Time { return testToday }
	hub := appinv.NewAlertHub(logger.Nop())
	rec := &recorder{}
	hub.Subscribe(rec)
	return &fixture{
		store:      store,
		tx:         tx,
		classifier: c,
		hub:        hub,
		rec:        rec,
		movements:  appinv.NewMovementUseCase(tx, c, hub),
		query:      appinv.NewQueryUseCase(store.Items(), store.Movements(), c),
	}
}

// seedItem crea un artículo en 0 y, si qty > 0, lo lleva a qty con un restock (ledger desde 0).
func (f *fixture) seedItem(t *testing.T, name string, qty, threshold int, opts ...func(*entity.InventoryItem)) *entity.InventoryItem {
	t.Helper()
	now := testToday
	it := &entity.InventoryItem{
		ID:               uuid.New().String(),
		SKU:              inventory.GenerateSKU(entity.CategoryMedicine),
		Name:             name,
		Category:         entity.CategoryMedicine,
		Unit:             entity.UnitBoxes,
		ReorderThreshold: threshold,
		UnitPrice:        decimal.RequireFromString("10.00"),
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, o := range opts {
		o(it)
	}
	require.NoError(t, f.store.Items().Create(context.Background(), it))
	if qty > 0 {
		_, err := f.movements.Apply(context.Background(), appinv.MovementInput{
			ItemID: it.ID, Delta: qty, Reason: entity.ReasonRestock, UserID: "seed",
		})
		require.NoError(t, err)
	}
	got, err := f.store.Items().GetByID(context.Background(), it.ID)
	require.NoError(t, err)
	return got
}

func (f *fixture) quantity(t *testing.T, id string) int {
	t.Helper()
	it, err := f.store.Items().GetByID(context.Background(), id)
	require.NoError(t, err)
	return it.Quantity
}

func (f *fixture) ledger(t *testing.T, id string) []*entity.StockMovement {
	t.Helper()
	movs, err := f.store.Movements().ListChain(context.Background(), id)
	require.NoError(t, err)
	return movs
}

func withExpiry(days int) func(*entity.InventoryItem) {
	return func(it *entity.InventoryItem) {
		d := inventory.DateOnly(testToday).AddDate(0, 0, days)
		it.ExpiryDate = &d
	}
}

func withCategory(cat string) func(*entity.InventoryItem) {
	return func(it *entity.InventoryItem) { it.Category = cat }
}

func intPtr(n int) *int { return &n }
