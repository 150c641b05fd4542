package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pawsitive-care/inventory-api/internal/application/dto"
	"github.com/pawsitive-care/inventory-api/internal/domain"
	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/internal/domain/inventory"
	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
)

// MovementReportLimit máximo de filas del reporte de movimientos.
const MovementReportLimit = 100

// QueryUseCase lecturas del ledger y estados derivados. Los estados se recalculan en cada lectura.
type QueryUseCase struct {
	itemRepo   repository.ItemRepository
	movRepo    repository.StockMovementRepository
	classifier *inventory.Classifier
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(
	itemRepo repository.ItemRepository,
	movRepo repository.StockMovementRepository,
	classifier *inventory.Classifier,
) *QueryUseCase {
	return &QueryUseCase{itemRepo: itemRepo, movRepo: movRepo, classifier: classifier}
}

// GetStatus estado de stock y vencimiento de un artículo.
func (uc *QueryUseCase) GetStatus(ctx context.Context, itemID string) (*dto.ItemStatusResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	out := ToItemStatus(item, uc.classifier)
	return &out, nil
}

// History movimientos de un artículo, más reciente primero.
func (uc *QueryUseCase) History(ctx context.Context, itemID string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	movs, total, err := uc.movRepo.ListByItem(ctx, itemID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, ToMovementResponse(m, item.SKU))
	}
	return &dto.MovementListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// MovementReport hasta 100 movimientos filtrados por tipo y rango de fechas (To inclusive) más conteo por tipo.
func (uc *QueryUseCase) MovementReport(ctx context.Context, q dto.MovementReportQuery) (*dto.MovementReportResponse, error) {
	f, err := movementFilter(q)
	if err != nil {
		return nil, err
	}
	f.Limit = MovementReportLimit
	movs, err := uc.movRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	counts, err := uc.movRepo.CountByType(ctx, repository.MovementFilter{ItemID: f.ItemID, From: f.From, To: f.To})
	if err != nil {
		return nil, err
	}
	skus, err := uc.skuLookup(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, ToMovementResponse(m, skus[m.ItemID]))
	}
	return &dto.MovementReportResponse{Movements: out, Counts: counts}, nil
}

// Recent últimos movimientos de todo el inventario, más reciente primero.
func (uc *QueryUseCase) Recent(ctx context.Context, limit int) ([]dto.MovementResponse, error) {
	movs, err := uc.movRepo.List(ctx, repository.MovementFilter{Limit: limit})
	if err != nil {
		return nil, err
	}
	skus, err := uc.skuLookup(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, ToMovementResponse(m, skus[m.ItemID]))
	}
	return out, nil
}

// ListAlerts artículos activos con stock bajo/agotado o por vencer/vencidos.
// Orden: agotados, bajos, luego vencidos y por vencer; dentro de cada grupo por nombre.
func (uc *QueryUseCase) ListAlerts(ctx context.Context) ([]dto.AlertDTO, error) {
	items, _, err := uc.itemRepo.List(ctx, repository.ItemFilter{SortBy: repository.SortByName})
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.AlertDTO, 0)
	for _, it := range items {
		st := ToItemStatus(it, uc.classifier)
		if !inventory.NeedsAttention(st.StockStatus, st.ExpiryStatus) {
			continue
		}
		alerts = append(alerts, dto.AlertDTO{ItemStatusResponse: st, Category: it.Category})
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		return alertRank(alerts[i]) < alertRank(alerts[j])
	})
	return alerts, nil
}

func alertRank(a dto.AlertDTO) int {
	switch {
	case a.StockStatus == inventory.StockOutOfStock:
		return 0
	case a.StockStatus == inventory.StockLow:
		return 1
	case a.ExpiryStatus == inventory.ExpiryExpired:
		return 2
	default:
		return 3
	}
}

func (uc *QueryUseCase) skuLookup(ctx context.Context) (map[string]string, error) {
	items, _, err := uc.itemRepo.List(ctx, repository.ItemFilter{IncludeInactive: true})
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, len(items))
	for _, it := range items {
		m[it.ID] = it.SKU
	}
	return m, nil
}

func movementFilter(q dto.MovementReportQuery) (repository.MovementFilter, error) {
	f := repository.MovementFilter{ItemID: q.ItemID}
	if q.Type != "" {
		switch q.Type {
		case entity.MovementTypeIN, entity.MovementTypeOUT, entity.MovementTypeADJUSTMENT:
			f.Type = q.Type
		default:
			return f, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, q.Type)
		}
	}
	from, err := ParseDate(q.From)
	if err != nil {
		return f, err
	}
	to, err := ParseDate(q.To)
	if err != nil {
		return f, err
	}
	if to != nil {
		// fin del día inclusive
		end := to.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	if from != nil && to != nil && to.Before(*from) {
		return f, fmt.Errorf("%w: el rango de fechas está invertido", domain.ErrInvalidInput)
	}
	f.From, f.To = from, to
	return f, nil
}
