package inventory_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawsitive-care/inventory-api/internal/application/dto"
	appinv "github.com/pawsitive-care/inventory-api/internal/application/inventory"
	"github.com/pawsitive-care/inventory-api/internal/domain"
	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/internal/domain/inventory"
	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
)

func TestGetStatus_Idempotente(t *testing.T) {
	f := newFixture(t)
	item := f.seedItem(t, "Vacuna rabia", 3, 5, withExpiry(10))

	s1, err := f.query.GetStatus(context.Background(), item.ID)
	require.NoError(t, err)
	s2, err := f.query.GetStatus(context.Background(), item.ID)
	require.NoError(t, err)

	assert.Equal(t, s1, s2)
	assert.Equal(t, inventory.StockLow, s1.StockStatus)
	assert.Equal(t, inventory.ExpiringSoon, s1.ExpiryStatus)
}

func TestHistory_MasRecientePrimero(t *testing.T) {
	f := newFixture(t)
	item := f.seedItem(t, "Vendas", 10, 2)
	_, err := f.movements.Apply(context.Background(), appinv.MovementInput{ItemID: item.ID, Delta: -1, Reason: entity.ReasonUse})
	require.NoError(t, err)
	_, err = f.movements.Apply(context.Background(), appinv.MovementInput{ItemID: item.ID, Delta: -2, Reason: entity.ReasonDamage})
	require.NoError(t, err)

	h, err := f.query.History(context.Background(), item.ID, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, h.Items, 2)
	assert.Equal(t, 3, h.Page.Total)
	assert.Equal(t, entity.ReasonDamage, h.Items[0].Reason)
	assert.Equal(t, entity.ReasonUse, h.Items[1].Reason)
	assert.Equal(t, item.SKU, h.Items[0].SKU)
}

func TestMovementReport_FiltraPorTipoYCuenta(t *testing.T) {
	f := newFixture(t)
	a := f.seedItem(t, "A", 10, 2)
	b := f.seedItem(t, "B", 10, 2)
	_, err := f.movements.Apply(context.Background(), appinv.MovementInput{ItemID: a.ID, Delta: -1, Reason: entity.ReasonSale})
	require.NoError(t, err)
	_, err = f.movements.Apply(context.Background(), appinv.MovementInput{ItemID: b.ID, Delta: 1, Reason: entity.ReasonCorrection})
	require.NoError(t, err)

	rep, err := f.query.MovementReport(context.Background(), dto.MovementReportQuery{Type: entity.MovementTypeOUT})
	require.NoError(t, err)
	require.Len(t, rep.Movements, 1)
	assert.Equal(t, a.ID, rep.Movements[0].ItemID)
	assert.Equal(t, 2, rep.Counts[entity.MovementTypeIN])
	assert.Equal(t, 1, rep.Counts[entity.MovementTypeOUT])
	assert.Equal(t, 1, rep.Counts[entity.MovementTypeADJUSTMENT])

	_, err = f.query.MovementReport(context.Background(), dto.MovementReportQuery{Type: "TRANSFER"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = f.query.MovementReport(context.Background(), dto.MovementReportQuery{From: "2026-02-10", To: "2026-02-01"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestListAlerts_AgotadosPrimero(t *testing.T) {
	f := newFixture(t)
	f.seedItem(t, "Normal", 50, 5)
	low := f.seedItem(t, "Bajo", 2, 5)
	out := f.seedItem(t, "Agotado", 0, 5)
	exp := f.seedItem(t, "Vencido", 50, 5, withExpiry(-3))
	inactive := f.seedItem(t, "Inactivo", 0, 5)
	require.NoError(t, f.store.Items().SetActive(context.Background(), inactive.ID, false))

	alerts, err := f.query.ListAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 3)
	assert.Equal(t, out.ID, alerts[0].ItemID)
	assert.Equal(t, low.ID, alerts[1].ItemID)
	assert.Equal(t, exp.ID, alerts[2].ItemID)
	assert.Equal(t, inventory.ExpiryExpired, alerts[2].ExpiryStatus)
}

// ── Reconciliación ────────────────────────────────────────────────────────────

func TestReconcile_DetectaEdicionManual(t *testing.T) {
	f := newFixture(t)
	ok := f.seedItem(t, "Íntegro", 10, 2)
	drift := f.seedItem(t, "Editado", 10, 2)
	// edición directa fuera del flujo de movimientos
	require.NoError(t, f.store.Items().UpdateQuantity(context.Background(), drift.ID, 10, 13, nil))

	uc := appinv.NewReconcileUseCase(f.store.Items(), f.store.Movements(), nil)
	rep, err := uc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, rep.CheckedItems)
	require.Equal(t, 1, rep.Inconsistent)
	assert.Equal(t, drift.ID, rep.Reports[0].ItemID)
	assert.Equal(t, inventory.IssueDrift, rep.Reports[0].Issues[0].Type)
	assert.Equal(t, 13, f.quantity(t, drift.ID), "la reconciliación no repara")

	single, err := uc.Item(context.Background(), ok.ID)
	require.NoError(t, err)
	assert.Empty(t, single.Issues)
}

// concurrentChain aplica un movimiento antes de cada lectura del ledger (hasta remaining veces).
type concurrentChain struct {
	repository.StockMovementRepository
	apply     func()
	remaining int
}

func (r *concurrentChain) ListChain(ctx context.Context, itemID string) ([]*entity.StockMovement, error) {
	if r.remaining > 0 {
		r.remaining--
		r.apply()
	}
	return r.StockMovementRepository.ListChain(ctx, itemID)
}

func TestReconcile_MovimientoConcurrenteNoEsDeriva(t *testing.T) {
	f := newFixture(t)
	item := f.seedItem(t, "Amoxicilina", 10, 2)
	sell := func() {
		_, err := f.movements.Apply(context.Background(), appinv.MovementInput{ItemID: item.ID, Delta: -1, Reason: entity.ReasonSale})
		require.NoError(t, err)
	}
	movs := &concurrentChain{StockMovementRepository: f.store.Movements(), apply: sell, remaining: 1}
	uc := appinv.NewReconcileUseCase(f.store.Items(), movs, nil)

	rep, err := uc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, rep.CheckedItems)
	assert.Zero(t, rep.Inconsistent)
	assert.Zero(t, rep.Skipped)

	movs.remaining = 1
	single, err := uc.Item(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Empty(t, single.Issues)
	assert.Equal(t, 8, single.StoredQuantity)
	assert.Equal(t, 8, single.DeltaSum)
}

func TestReconcile_ArticuloInestableSeOmite(t *testing.T) {
	f := newFixture(t)
	item := f.seedItem(t, "Amoxicilina", 50, 2)
	sell := func() {
		_, err := f.movements.Apply(context.Background(), appinv.MovementInput{ItemID: item.ID, Delta: -1, Reason: entity.ReasonSale})
		require.NoError(t, err)
	}
	movs := &concurrentChain{StockMovementRepository: f.store.Movements(), apply: sell, remaining: 100}
	uc := appinv.NewReconcileUseCase(f.store.Items(), movs, nil)

	rep, err := uc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Skipped)
	assert.Zero(t, rep.Inconsistent)

	_, err = uc.Item(context.Background(), item.ID)
	assert.ErrorIs(t, err, domain.ErrConcurrentConflict)
}

// ── Reposición ────────────────────────────────────────────────────────────────

func TestReplenishment_AgotadosPrimeroLuegoMayorDeficit(t *testing.T) {
	f := newFixture(t)
	sup := &entity.Supplier{ID: "sup-1", Name: "VetPharma", IsActive: true}
	require.NoError(t, f.store.Suppliers().Create(context.Background(), sup))

	f.seedItem(t, "Sobrado", 100, 10)
	small := f.seedItem(t, "Déficit chico", 9, 10)
	big := f.seedItem(t, "Déficit grande", 1, 20, func(it *entity.InventoryItem) { it.SupplierID = sup.ID })
	out := f.seedItem(t, "Agotado", 0, 4)

	uc := appinv.NewReplenishmentUseCase(f.store.Items(), f.store.Suppliers())
	list, err := uc.GenerateReplenishmentList(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, out.ID, list[0].ItemID)
	assert.Equal(t, 6, list[0].SuggestedOrderQty)
	assert.Equal(t, big.ID, list[1].ItemID)
	assert.Equal(t, 29, list[1].SuggestedOrderQty)
	assert.Equal(t, "VetPharma", list[1].SupplierName)
	assert.True(t, list[1].EstimatedOrderCost.Equal(decimal.NewFromInt(290)))
	assert.Equal(t, small.ID, list[2].ItemID)
	assert.Equal(t, 6, list[2].SuggestedOrderQty)
	assert.Equal(t, []int{1, 2, 3}, []int{list[0].Priority, list[1].Priority, list[2].Priority})
}

func TestIdealStock_RedondeaHaciaArriba(t *testing.T) {
	assert.Equal(t, 8, appinv.IdealStock(5))
	assert.Equal(t, 6, appinv.IdealStock(4))
	assert.Equal(t, 0, appinv.IdealStock(0))
}

// ── Exportación ───────────────────────────────────────────────────────────────

type fakePDF struct{ data appinv.StockReportData }

func (g *fakePDF) GenerateStockReport(d appinv.StockReportData) ([]byte, error) {
	g.data = d
	return []byte("%PDF-1.3"), nil
}

func newExport(f *fixture, gen appinv.ReportGenerator) *appinv.ExportUseCase {
	return appinv.NewExportUseCase(f.store.Items(), f.store.Movements(), f.store.Analytics(), f.query, f.classifier, gen, "Pawsitive Care")
}

func TestWriteItemsCSV_CabeceraYFilas(t *testing.T) {
	f := newFixture(t)
	item := f.seedItem(t, "Amoxicilina, 500mg", 3, 5, withExpiry(-1))

	var buf bytes.Buffer
	require.NoError(t, newExport(f, nil).WriteItemsCSV(context.Background(), &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"ID", "SKU", "Name", "Category", "Unit", "Quantity", "ReorderThreshold",
		"UnitPrice", "StockStatus", "ExpiryDate", "ExpiryStatus", "Active"}, rows[0])
	assert.Equal(t, item.ID, rows[1][0])
	assert.Equal(t, "Amoxicilina, 500mg", rows[1][2])
	assert.Equal(t, "3", rows[1][5])
	assert.Equal(t, "10.00", rows[1][7])
	assert.Equal(t, inventory.StockLow, rows[1][8])
	assert.Equal(t, inventory.ExpiryExpired, rows[1][10])
	assert.Equal(t, "true", rows[1][11])
}

func TestWriteMovementsCSV_PorArticulo(t *testing.T) {
	f := newFixture(t)
	a := f.seedItem(t, "A", 5, 1)
	f.seedItem(t, "B", 5, 1)
	_, err := f.movements.Apply(context.Background(), appinv.MovementInput{ItemID: a.ID, Delta: -2, Reason: entity.ReasonSale, Note: "venta mostrador"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, newExport(f, nil).WriteMovementsCSV(context.Background(), &buf, dto.MovementReportQuery{ItemID: a.ID}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, a.SKU, rows[1][2])
	assert.Equal(t, "-2", rows[1][4])
	assert.Equal(t, "5", rows[1][5])
	assert.Equal(t, "3", rows[1][6])
	assert.Equal(t, "venta mostrador", rows[1][8])
	_, err = time.Parse(time.RFC3339, rows[1][10])
	assert.NoError(t, err)
}

func TestStockReportPDF_ArmaDatos(t *testing.T) {
	f := newFixture(t)
	f.seedItem(t, "Amoxicilina", 3, 5)
	f.seedItem(t, "Croquetas", 20, 5, withCategory(entity.CategoryFood))

	gen := &fakePDF{}
	pdf, name, err := newExport(f, gen).StockReportPDF(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "stock-report-20260615.pdf", name)
	assert.Equal(t, 2, gen.data.TotalItems)
	assert.Equal(t, 1, gen.data.LowStock)
	assert.True(t, gen.data.TotalValue.Equal(decimal.NewFromInt(230)))
	require.Len(t, gen.data.Categories, 2)
	assert.Equal(t, entity.CategoryFood, gen.data.Categories[0].Category)
	assert.Len(t, gen.data.Alerts, 1)
}

// ── Cotización ────────────────────────────────────────────────────────────────

func TestPricingUseCase_PorArticuloYPorPrecio(t *testing.T) {
	f := newFixture(t)
	item := f.seedItem(t, "Amoxicilina", 100, 5)
	uc := appinv.NewPricingUseCase(f.store.Items(), inventory.DefaultPricingRules(), f.classifier)

	q, err := uc.Quote(context.Background(), dto.QuoteRequest{Policy: inventory.PolicyBulk, ItemID: item.ID, Quantity: 60})
	require.NoError(t, err)
	assert.True(t, q.Total.Equal(decimal.NewFromInt(540)))

	base := decimal.RequireFromString("10.00")
	q, err = uc.Quote(context.Background(), dto.QuoteRequest{Policy: inventory.PolicyBulk, BasePrice: &base, Quantity: 40})
	require.NoError(t, err)
	assert.True(t, q.Total.Equal(decimal.NewFromInt(400)))

	_, err = uc.Quote(context.Background(), dto.QuoteRequest{Policy: inventory.PolicyStandard, Quantity: 1})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	assert.Len(t, uc.Policies(), 4)
}
