// Package purchasing contiene las órdenes de compra a proveedores y la recepción de mercancía.
package purchasing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pawsitive-care/inventory-api/internal/application/dto"
	appinv "github.com/pawsitive-care/inventory-api/internal/application/inventory"
	"github.com/pawsitive-care/inventory-api/internal/domain"
	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/internal/domain/inventory"
	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
	"github.com/pawsitive-care/inventory-api/pkg/logger"
)

// UseCase casos de uso de órdenes de compra.
type UseCase struct {
	txRunner     TxRunner
	poRepo       repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	movements    *appinv.MovementUseCase
	classifier   *inventory.Classifier
	log          *logger.Logger
	now          func() time.Time
}

// NewUseCase construye el caso de uso. poRepo se usa para lecturas fuera de transacción.
func NewUseCase(
	txRunner TxRunner,
	poRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	movements *appinv.MovementUseCase,
	classifier *inventory.Classifier,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		txRunner:     txRunner,
		poRepo:       poRepo,
		supplierRepo: supplierRepo,
		movements:    movements,
		classifier:   classifier,
		log:          log.Named("purchasing"),
		now:          time.Now,
	}
}

// Create registra una orden en DRAFT. El proveedor debe existir y estar activo; los artículos deben existir.
// Una línea sin precio toma el precio unitario del catálogo.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la orden requiere al menos una línea", domain.ErrInvalidInput)
	}
	expected, err := appinv.ParseDate(derefString(in.ExpectedDelivery))
	if err != nil {
		return nil, err
	}
	// 1. Proveedor (fuera de la transacción)
	sup, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: proveedor %s no existe", domain.ErrInvalidInput, in.SupplierID)
		}
		return nil, err
	}
	if !sup.IsActive {
		return nil, fmt.Errorf("%w: proveedor %s inactivo", domain.ErrInvalidInput, sup.Name)
	}

	now := uc.now()
	po := &entity.PurchaseOrder{
		ID:               uuid.New().String(),
		OrderNumber:      inventory.GenerateOrderNumber(now),
		SupplierID:       sup.ID,
		Status:           entity.POStatusDraft,
		ExpectedDelivery: expected,
		TotalAmount:      decimal.Zero,
		Notes:            strings.TrimSpace(in.Notes),
		CreatedBy:        userID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	// 2. Líneas y alta en una transacción
	err = uc.txRunner.RunPurchasing(ctx, func(itemRepo repository.ItemRepository, _ repository.StockMovementRepository, poRepo repository.PurchaseOrderRepository) error {
		for i, l := range in.Items {
			if l.QuantityOrdered <= 0 || l.QuantityOrdered > entity.MaxQuantity {
				return fmt.Errorf("%w: línea %d: quantity_ordered fuera de rango (1 a %d)", domain.ErrInvalidInput, i+1, entity.MaxQuantity)
			}
			item, err := itemRepo.GetByID(ctx, l.ItemID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return fmt.Errorf("%w: línea %d: artículo %s no existe", domain.ErrInvalidInput, i+1, l.ItemID)
				}
				return err
			}
			price := item.UnitPrice
			if l.UnitPrice != nil {
				if l.UnitPrice.IsNegative() {
					return fmt.Errorf("%w: línea %d: unit_price negativo", domain.ErrInvalidInput, i+1)
				}
				price = *l.UnitPrice
			}
			total := price.Mul(decimal.NewFromInt(int64(l.QuantityOrdered))).Round(2)
			po.Items = append(po.Items, entity.PurchaseOrderItem{
				ID:              uuid.New().String(),
				PurchaseOrderID: po.ID,
				ItemID:          item.ID,
				QuantityOrdered: l.QuantityOrdered,
				UnitPrice:       price,
				TotalPrice:      total,
			})
			po.TotalAmount = po.TotalAmount.Add(total)
		}
		return poRepo.Create(ctx, po)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_number", po.OrderNumber).Str("supplier_id", po.SupplierID).
		Str("total", po.TotalAmount.StringFixed(2)).Msg("orden de compra creada")
	return toResponse(po), nil
}

// GetByID obtiene una orden con sus líneas.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.poRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(po), nil
}

// List lista órdenes, más reciente primero.
func (uc *UseCase) List(ctx context.Context, q dto.PurchaseOrderListQuery) (*dto.PurchaseOrderListResponse, error) {
	q.DefaultPage()
	status := strings.ToUpper(strings.TrimSpace(q.Status))
	list, total, err := uc.poRepo.List(ctx, repository.PurchaseOrderFilter{
		Status:     status,
		SupplierID: q.SupplierID,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		items = append(items, *toResponse(po))
	}
	return &dto.PurchaseOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// ChangeStatus aplica una transición manual permitida. RECEIVED no se asigna por esta vía.
func (uc *UseCase) ChangeStatus(ctx context.Context, id, status string) (*dto.PurchaseOrderResponse, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	var updated *entity.PurchaseOrder
	err := uc.txRunner.RunPurchasing(ctx, func(_ repository.ItemRepository, _ repository.StockMovementRepository, poRepo repository.PurchaseOrderRepository) error {
		po, err := poRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !entity.CanTransition(po.Status, status) {
			return fmt.Errorf("%w: transición %s -> %s no permitida", domain.ErrInvalidInput, po.Status, status)
		}
		if err := poRepo.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		po.Status = status
		updated = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(updated), nil
}

// Receive registra mercancía recibida: por cada línea actualiza lo recibido y aplica un restock en la misma
// transacción. Cuando todas las líneas quedan completas la orden pasa a RECEIVED. Las alertas salen tras el commit.
func (uc *UseCase) Receive(ctx context.Context, id, userID string, in dto.ReceiveRequest) (*dto.ReceiveResponse, error) {
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: no hay líneas para recibir", domain.ErrInvalidInput)
	}
	seen := make(map[string]bool, len(in.Lines))
	for _, l := range in.Lines {
		if l.Quantity <= 0 || l.Quantity > entity.MaxQuantity {
			return nil, fmt.Errorf("%w: línea %s: cantidad recibida fuera de rango (1 a %d)", domain.ErrInvalidInput, l.LineID, entity.MaxQuantity)
		}
		if seen[l.LineID] {
			return nil, fmt.Errorf("%w: línea %s repetida", domain.ErrInvalidInput, l.LineID)
		}
		seen[l.LineID] = true
	}

	var (
		po      *entity.PurchaseOrder
		results []*appinv.MovementResult
	)
	err := uc.txRunner.RunPurchasing(ctx, func(itemRepo repository.ItemRepository, movRepo repository.StockMovementRepository, poRepo repository.PurchaseOrderRepository) error {
		var err error
		po, err = poRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !po.CanReceive() {
			return fmt.Errorf("%w: la orden %s está en %s y no admite recepción", domain.ErrInvalidInput, po.OrderNumber, po.Status)
		}
		lines := make(map[string]*entity.PurchaseOrderItem, len(po.Items))
		for i := range po.Items {
			lines[po.Items[i].ID] = &po.Items[i]
		}

		for _, l := range in.Lines {
			line, ok := lines[l.LineID]
			if !ok {
				return fmt.Errorf("%w: la línea %s no pertenece a la orden", domain.ErrInvalidInput, l.LineID)
			}
			if l.Quantity > line.Pending() {
				return fmt.Errorf("%w: línea %s: se reciben %d pero quedan %d pendientes", domain.ErrInvalidInput, l.LineID, l.Quantity, line.Pending())
			}
			line.QuantityReceived += l.Quantity
			if err := poRepo.UpdateLineReceived(ctx, line.ID, line.QuantityReceived); err != nil {
				return err
			}
			res, err := uc.movements.ApplyInTx(ctx, itemRepo, movRepo, appinv.MovementInput{
				ItemID: line.ItemID,
				Delta:  l.Quantity,
				Reason: entity.ReasonRestock,
				Note:   "OC " + po.OrderNumber,
				UserID: userID,
			})
			if err != nil {
				return err
			}
			results = append(results, res)
		}

		if po.FullyReceived() {
			if err := poRepo.UpdateStatus(ctx, po.ID, entity.POStatusReceived); err != nil {
				return err
			}
			po.Status = entity.POStatusReceived
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.movements.Notify(ctx, results...)
	uc.log.Info().Str("order_number", po.OrderNumber).Int("lines", len(results)).
		Str("status", po.Status).Msg("mercancía recibida")

	out := &dto.ReceiveResponse{Order: *toResponse(po), Movements: make([]dto.MovementResponse, 0, len(results))}
	for _, r := range results {
		out.Movements = append(out.Movements, appinv.ToMovementResponse(r.Movement, r.Item.SKU))
	}
	return out, nil
}

func toResponse(po *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	items := make([]dto.PurchaseOrderItemResponse, 0, len(po.Items))
	for _, l := range po.Items {
		items = append(items, dto.PurchaseOrderItemResponse{
			ID:               l.ID,
			ItemID:           l.ItemID,
			QuantityOrdered:  l.QuantityOrdered,
			QuantityReceived: l.QuantityReceived,
			UnitPrice:        l.UnitPrice,
			TotalPrice:       l.TotalPrice,
		})
	}
	return &dto.PurchaseOrderResponse{
		ID:               po.ID,
		OrderNumber:      po.OrderNumber,
		SupplierID:       po.SupplierID,
		Status:           po.Status,
		ExpectedDelivery: appinv.FormatDate(po.ExpectedDelivery),
		TotalAmount:      po.TotalAmount,
		Notes:            po.Notes,
		CreatedBy:        po.CreatedBy,
		CreatedAt:        po.CreatedAt,
		UpdatedAt:        po.UpdatedAt,
		Items:            items,
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
