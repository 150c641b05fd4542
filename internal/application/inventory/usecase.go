package inventory

import (
	"context"
	"fmt"

	"github.com/pawsitive-care/inventory-api/internal/application/dto"
	"github.com/pawsitive-care/inventory-api/internal/domain"
)

// MaxBatchLines tope de líneas por lote de movimientos.
const MaxBatchLines = 100

// ApplyFromRequest adapta el request HTTP al caso de uso Apply(ctx, MovementInput).
func (uc *MovementUseCase) ApplyFromRequest(ctx context.Context, userID string, in dto.MovementRequest) (*dto.MovementResultResponse, error) {
	res, err := uc.Apply(ctx, MovementInput{
		ItemID:           in.ItemID,
		Delta:            in.Delta,
		Reason:           in.Reason,
		Note:             in.Note,
		UserID:           userID,
		ExpectedQuantity: in.ExpectedQuantity,
		TargetQuantity:   in.TargetQuantity,
	})
	if err != nil {
		return nil, err
	}
	out := ToMovementResultResponse(res, uc.classifier)
	return &out, nil
}

// ApplyBatch aplica cada línea en su propia transacción: una línea rechazada no revierte las demás.
// Solo falla entero si el lote está vacío, excede MaxBatchLines o se cancela el contexto.
func (uc *MovementUseCase) ApplyBatch(ctx context.Context, userID string, in dto.MovementBatchRequest) (*dto.MovementBatchResponse, error) {
	n := len(in.Movements)
	if n == 0 {
		return nil, fmt.Errorf("%w: el lote no tiene movimientos", domain.ErrInvalidInput)
	}
	if n > MaxBatchLines {
		return nil, fmt.Errorf("%w: el lote admite hasta %d movimientos", domain.ErrInvalidInput, MaxBatchLines)
	}

	out := &dto.MovementBatchResponse{Total: n, Results: make([]dto.MovementBatchLine, 0, n)}
	for i, req := range in.Movements {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := dto.MovementBatchLine{Index: i}
		res, err := uc.ApplyFromRequest(ctx, userID, req)
		if err != nil {
			line.Error = &dto.ErrorResponse{Code: domain.ErrorCode(err), Message: err.Error()}
			out.Failed++
		} else {
			line.Success = true
			line.Result = res
			out.Successful++
		}
		out.Results = append(out.Results, line)
	}
	return out, nil
}
