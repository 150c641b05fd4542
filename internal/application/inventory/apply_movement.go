package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pawsitive-care/inventory-api/internal/domain"
	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/internal/domain/inventory"
	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
)

// MovementUseCase aplica deltas de stock de forma transaccional: bloqueo de fila (SELECT FOR UPDATE),
// escritura compare-and-set de la cantidad y alta del movimiento en el ledger, con Commit o Rollback.
type MovementUseCase struct {
	txRunner   TxRunner
	classifier *inventory.Classifier
	hub        *AlertHub
	now        func() time.Time
}

// NewMovementUseCase construye el caso de uso. hub puede ser nil (sin alertas).
func NewMovementUseCase(txRunner TxRunner, classifier *inventory.Classifier, hub *AlertHub) *MovementUseCase {
	return &MovementUseCase{
		txRunner:   txRunner,
		classifier: classifier,
		hub:        hub,
		now:        time.Now,
	}
}

// MovementInput entrada para aplicar un movimiento.
// ExpectedQuantity opcional: si no coincide con la cantidad bloqueada se rechaza con ErrConcurrentConflict.
// TargetQuantity (conteo físico) excluye Delta: el delta se calcula contra la fila bloqueada.
type MovementInput struct {
	ItemID           string
	Delta            int
	Reason           string
	Note             string
	UserID           string
	ExpectedQuantity *int
	TargetQuantity   *int
}

// NoteCount nota por defecto de un conteo físico.
const NoteCount = "conteo físico"

// MovementResult artículo actualizado, movimiento creado y estados antes/después.
type MovementResult struct {
	Item                 *entity.InventoryItem
	Movement             *entity.StockMovement
	StockStatus          string
	ExpiryStatus         string
	PreviousStockStatus  string
	PreviousExpiryStatus string
}

// StatusChanged true si cambió el estado de stock o de vencimiento.
func (r *MovementResult) StatusChanged() bool {
	return r.StockStatus != r.PreviousStockStatus || r.ExpiryStatus != r.PreviousExpiryStatus
}

// ValidateMovement rechaza motivo o delta inválidos antes de tocar la BD.
func ValidateMovement(in MovementInput) error {
	if in.ItemID == "" {
		return fmt.Errorf("%w: item_id es obligatorio", domain.ErrInvalidInput)
	}
	if in.TargetQuantity != nil {
		return validateCount(in)
	}
	if !entity.ValidReason(in.Reason) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidReason, in.Reason)
	}
	if in.Delta == 0 {
		return fmt.Errorf("%w: el delta no puede ser 0", domain.ErrInvalidInput)
	}
	if in.Delta > entity.MaxQuantity || in.Delta < -entity.MaxQuantity {
		return fmt.Errorf("%w: delta %+d fuera de rango", domain.ErrInvalidInput, in.Delta)
	}
	if !entity.ReasonAllowsDelta(in.Reason, in.Delta) {
		return fmt.Errorf("%w: el motivo %q no admite delta %+d", domain.ErrInvalidInput, in.Reason, in.Delta)
	}
	return nil
}

func validateCount(in MovementInput) error {
	if in.Delta != 0 {
		return fmt.Errorf("%w: delta y target_quantity son excluyentes", domain.ErrInvalidInput)
	}
	if in.Reason != "" && in.Reason != entity.ReasonCorrection {
		return fmt.Errorf("%w: un conteo físico solo admite el motivo %q", domain.ErrInvalidInput, entity.ReasonCorrection)
	}
	if t := *in.TargetQuantity; t < 0 || t > entity.MaxQuantity {
		return fmt.Errorf("%w: target_quantity %d fuera de rango", domain.ErrInvalidInput, t)
	}
	return nil
}

// normalizeCount completa motivo y nota de un conteo físico.
func normalizeCount(in MovementInput) MovementInput {
	if in.TargetQuantity == nil {
		return in
	}
	in.Reason = entity.ReasonCorrection
	if in.Note == "" {
		in.Note = NoteCount
	}
	return in
}

// Apply valida, ejecuta la transacción y, tras el commit, emite alerta si cambió el estado.
func (uc *MovementUseCase) Apply(ctx context.Context, in MovementInput) (*MovementResult, error) {
	if err := ValidateMovement(in); err != nil {
		return nil, err
	}
	in = normalizeCount(in)

	var res *MovementResult
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.StockMovementRepository) error {
		r, err := uc.ApplyInTx(ctx, itemRepo, movRepo, in)
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.Notify(ctx, res)
	return res, nil
}

// ApplyInTx aplica el movimiento con los repositorios del caller (misma transacción).
// No emite alertas: el caller llama Notify después de su commit.
// Un conteo físico que coincide con la cantidad bloqueada no escribe nada y devuelve Movement nil.
func (uc *MovementUseCase) ApplyInTx(
	ctx context.Context,
	itemRepo repository.ItemRepository,
	movRepo repository.StockMovementRepository,
	in MovementInput,
) (*MovementResult, error) {
	if err := ValidateMovement(in); err != nil {
		return nil, err
	}
	in = normalizeCount(in)

	// Bloquea la fila del artículo hasta el fin de la transacción
	item, err := itemRepo.GetForUpdate(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if !item.IsActive {
		return nil, fmt.Errorf("%w: el artículo %s está inactivo", domain.ErrInvalidInput, item.SKU)
	}
	if in.ExpectedQuantity != nil && *in.ExpectedQuantity != item.Quantity {
		return nil, fmt.Errorf("%w: se esperaba %d, cantidad actual %d",
			domain.ErrConcurrentConflict, *in.ExpectedQuantity, item.Quantity)
	}

	before := item.Quantity
	if in.TargetQuantity != nil {
		in.Delta = *in.TargetQuantity - before
		if in.Delta == 0 {
			stock, expiry := uc.classifier.Status(before, item.ReorderThreshold, item.ExpiryDate)
			return &MovementResult{
				Item:                 item,
				StockStatus:          stock,
				ExpiryStatus:         expiry,
				PreviousStockStatus:  stock,
				PreviousExpiryStatus: expiry,
			}, nil
		}
	}
	after := before + in.Delta
	if after < 0 {
		return nil, &domain.InsufficientStockError{ItemID: item.ID, Requested: -in.Delta, Available: before}
	}
	if after > entity.MaxQuantity {
		return nil, fmt.Errorf("%w: la cantidad resultante %d supera el máximo %d",
			domain.ErrInvalidInput, after, entity.MaxQuantity)
	}

	now := uc.now()
	var restockedAt *time.Time
	if in.Reason == entity.ReasonRestock {
		restockedAt = &now
	}
	if err := itemRepo.UpdateQuantity(ctx, item.ID, before, after, restockedAt); err != nil {
		return nil, err
	}

	mov := &entity.StockMovement{
		ID:             uuid.New().String(),
		ItemID:         item.ID,
		Type:           entity.MovementTypeFor(in.Reason, in.Delta),
		Delta:          in.Delta,
		QuantityBefore: before,
		QuantityAfter:  after,
		Reason:         in.Reason,
		Note:           in.Note,
		CreatedBy:      in.UserID,
		CreatedAt:      now,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}

	prevStock, prevExpiry := uc.classifier.Status(before, item.ReorderThreshold, item.ExpiryDate)
	item.Quantity = after
	item.UpdatedAt = now
	if restockedAt != nil {
		item.LastRestockedAt = restockedAt
	}
	stock, expiry := uc.classifier.Status(after, item.ReorderThreshold, item.ExpiryDate)

	return &MovementResult{
		Item:                 item,
		Movement:             mov,
		StockStatus:          stock,
		ExpiryStatus:         expiry,
		PreviousStockStatus:  prevStock,
		PreviousExpiryStatus: prevExpiry,
	}, nil
}

// Notify despacha AlertEvent por cada resultado cuyo estado cambió. Llamar solo después del commit.
func (uc *MovementUseCase) Notify(ctx context.Context, results ...*MovementResult) {
	if uc.hub == nil {
		return
	}
	for _, r := range results {
		if r == nil || r.Movement == nil || !r.StatusChanged() {
			continue
		}
		uc.hub.Dispatch(ctx, entity.AlertEvent{
			ItemID:         r.Item.ID,
			SKU:            r.Item.SKU,
			Name:           r.Item.Name,
			PreviousStatus: r.PreviousStockStatus,
			Status:         r.StockStatus,
			PreviousExpiry: r.PreviousExpiryStatus,
			ExpiryStatus:   r.ExpiryStatus,
			Quantity:       r.Item.Quantity,
			Threshold:      r.Item.ReorderThreshold,
			MovementID:     r.Movement.ID,
			OccurredAt:     r.Movement.CreatedAt,
		})
	}
}
