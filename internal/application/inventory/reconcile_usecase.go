package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pawsitive-care/inventory-api/internal/application/dto"
	"github.com/pawsitive-care/inventory-api/internal/domain"
	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/internal/domain/inventory"
	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
	"github.com/pawsitive-care/inventory-api/pkg/logger"
)

// reconcileAttempts lecturas de artículo + ledger antes de dar por inestable un artículo.
const reconcileAttempts = 3

// ReconcileUseCase detecta deriva entre la cantidad almacenada y el ledger. Solo lectura; nunca repara.
type ReconcileUseCase struct {
	itemRepo repository.ItemRepository
	movRepo  repository.StockMovementRepository
	log      *logger.Logger
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(itemRepo repository.ItemRepository, movRepo repository.StockMovementRepository, log *logger.Logger) *ReconcileUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ReconcileUseCase{itemRepo: itemRepo, movRepo: movRepo, log: log.Named("reconcile")}
}

// Run verifica todos los artículos (incluidos inactivos) y devuelve solo los inconsistentes.
// Un artículo que sigue recibiendo movimientos durante la verificación se cuenta en Skipped.
func (uc *ReconcileUseCase) Run(ctx context.Context) (*dto.ReconcileResponse, error) {
	items, _, err := uc.itemRepo.List(ctx, repository.ItemFilter{IncludeInactive: true, SortBy: repository.SortBySKU})
	if err != nil {
		return nil, err
	}
	out := &dto.ReconcileResponse{
		CheckedItems: len(items),
		Reports:      []dto.LedgerReportDTO{},
		GeneratedAt:  time.Now().UTC(),
	}
	for _, it := range items {
		rep, err := uc.verify(ctx, it)
		if errors.Is(err, domain.ErrConcurrentConflict) {
			out.Skipped++
			uc.log.Info().Str("item_id", it.ID).Str("sku", it.SKU).Msg("artículo con movimientos en curso; se omite")
			continue
		}
		if err != nil {
			return nil, err
		}
		if rep.Consistent() {
			continue
		}
		out.Reports = append(out.Reports, toLedgerReportDTO(rep, it.SKU))
	}
	out.Inconsistent = len(out.Reports)
	if out.Inconsistent > 0 {
		uc.log.Warn().Int("inconsistent", out.Inconsistent).Int("checked", out.CheckedItems).
			Msg("ledger con deriva respecto a la cantidad almacenada")
	}
	return out, nil
}

// Item verifica un solo artículo; el reporte se devuelve aunque sea consistente.
func (uc *ReconcileUseCase) Item(ctx context.Context, itemID string) (*dto.LedgerReportDTO, error) {
	it, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	rep, err := uc.verify(ctx, it)
	if err != nil {
		return nil, err
	}
	out := toLedgerReportDTO(rep, it.SKU)
	return &out, nil
}

// verify contrasta el ledger con la cantidad leída. Las dos lecturas no comparten transacción:
// si el artículo cambió mientras se leía el ledger se vuelve a leer, hasta reconcileAttempts veces.
func (uc *ReconcileUseCase) verify(ctx context.Context, it *entity.InventoryItem) (*inventory.LedgerReport, error) {
	for attempt := 1; ; attempt++ {
		chain, err := uc.movRepo.ListChain(ctx, it.ID)
		if err != nil {
			return nil, err
		}
		cur, err := uc.itemRepo.GetByID(ctx, it.ID)
		if err != nil {
			return nil, err
		}
		if cur.Quantity == it.Quantity && cur.UpdatedAt.Equal(it.UpdatedAt) {
			return inventory.VerifyChain(it.ID, it.Quantity, chain), nil
		}
		if attempt == reconcileAttempts {
			return nil, fmt.Errorf("%w: el artículo %s cambió durante la reconciliación", domain.ErrConcurrentConflict, it.SKU)
		}
		it = cur
	}
}

func toLedgerReportDTO(rep *inventory.LedgerReport, sku string) dto.LedgerReportDTO {
	issues := make([]dto.LedgerIssueDTO, 0, len(rep.Issues))
	for _, is := range rep.Issues {
		issues = append(issues, dto.LedgerIssueDTO{
			Type:       is.Type,
			MovementID: is.MovementID,
			Expected:   is.Expected,
			Actual:     is.Actual,
			Details:    is.Details,
		})
	}
	return dto.LedgerReportDTO{
		ItemID:         rep.ItemID,
		SKU:            sku,
		StoredQuantity: rep.StoredQuantity,
		LedgerQuantity: rep.LedgerQuantity,
		MovementCount:  rep.MovementCount,
		DeltaSum:       rep.DeltaSum,
		Issues:         issues,
	}
}
