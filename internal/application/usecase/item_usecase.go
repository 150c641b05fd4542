package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pawsitive-care/inventory-api/internal/application/dto"
	appinv "github.com/pawsitive-care/inventory-api/internal/application/inventory"
	"github.com/pawsitive-care/inventory-api/internal/domain"
	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/internal/domain/inventory"
	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD del catálogo. La cantidad solo cambia vía movimientos.
type ItemUseCase struct {
	repo         repository.ItemRepository
	supplierRepo repository.SupplierRepository
	txRunner     appinv.TxRunner
	movements    *appinv.MovementUseCase
	classifier   *inventory.Classifier
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(
	repo repository.ItemRepository,
	supplierRepo repository.SupplierRepository,
	txRunner appinv.TxRunner,
	movements *appinv.MovementUseCase,
	classifier *inventory.Classifier,
) *ItemUseCase {
	return &ItemUseCase{
		repo:         repo,
		supplierRepo: supplierRepo,
		txRunner:     txRunner,
		movements:    movements,
		classifier:   classifier,
	}
}

// Create crea el artículo en 0 y, si hay cantidad inicial, la registra como restock en la misma transacción.
func (uc *ItemUseCase) Create(ctx context.Context, userID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	in.Category = strings.ToUpper(strings.TrimSpace(in.Category))
	in.Unit = strings.ToUpper(strings.TrimSpace(in.Unit))
	if err := validateItemFields(in.Name, in.Category, in.Unit, in.ReorderThreshold, in.UnitPrice.IsNegative()); err != nil {
		return nil, err
	}
	if in.InitialQuantity < 0 || in.InitialQuantity > entity.MaxQuantity {
		return nil, fmt.Errorf("%w: initial_quantity fuera de rango (0 a %d)", domain.ErrInvalidInput, entity.MaxQuantity)
	}

	sku := inventory.GenerateSKU(in.Category)
	if in.SKU != "" {
		s, err := inventory.NormalizeSKU(in.SKU)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		sku = s
	}
	expiry, err := appinv.ParseDate(derefString(in.ExpiryDate))
	if err != nil {
		return nil, err
	}
	// fuera de la transacción: el proveedor no participa del bloqueo
	if err := uc.checkSupplier(ctx, in.SupplierID); err != nil {
		return nil, err
	}

	now := time.Now()
	item := &entity.InventoryItem{
		ID:               uuid.New().String(),
		SKU:              sku,
		Name:             strings.TrimSpace(in.Name),
		Description:      in.Description,
		Category:         in.Category,
		Unit:             in.Unit,
		ReorderThreshold: in.ReorderThreshold,
		UnitPrice:        in.UnitPrice,
		ExpiryDate:       expiry,
		SupplierID:       in.SupplierID,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	var restock *appinv.MovementResult
	err = uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.StockMovementRepository) error {
		if existing, err := itemRepo.GetBySKU(ctx, sku); err == nil && existing != nil {
			return fmt.Errorf("%w: sku %s", domain.ErrDuplicate, sku)
		} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if err := itemRepo.Create(ctx, item); err != nil {
			return err
		}
		if in.InitialQuantity == 0 {
			return nil
		}
		res, err := uc.movements.ApplyInTx(ctx, itemRepo, movRepo, appinv.MovementInput{
			ItemID: item.ID,
			Delta:  in.InitialQuantity,
			Reason: entity.ReasonRestock,
			Note:   "stock inicial",
			UserID: userID,
		})
		if err != nil {
			return err
		}
		restock = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Sin alerta: el stock inicial no es una transición de estado
	if restock != nil {
		item = restock.Item
	}
	out := appinv.ToItemResponse(item, uc.classifier)
	return &out, nil
}

// GetByID obtiene un artículo (activo o no) con estados recalculados.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := appinv.ToItemResponse(item, uc.classifier)
	return &out, nil
}

// Update actualización parcial. No permite modificar la cantidad.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Category != nil {
		item.Category = strings.ToUpper(strings.TrimSpace(*in.Category))
	}
	if in.Unit != nil {
		item.Unit = strings.ToUpper(strings.TrimSpace(*in.Unit))
	}
	if in.ReorderThreshold != nil {
		item.ReorderThreshold = *in.ReorderThreshold
	}
	if in.UnitPrice != nil {
		item.UnitPrice = *in.UnitPrice
	}
	if in.ExpiryDate != nil {
		exp, err := appinv.ParseDate(*in.ExpiryDate)
		if err != nil {
			return nil, err
		}
		item.ExpiryDate = exp
	}
	if in.SupplierID != nil {
		if err := uc.checkSupplier(ctx, *in.SupplierID); err != nil {
			return nil, err
		}
		item.SupplierID = *in.SupplierID
	}
	if in.IsActive != nil {
		item.IsActive = *in.IsActive
	}
	if err := validateItemFields(item.Name, item.Category, item.Unit, item.ReorderThreshold, item.UnitPrice.IsNegative()); err != nil {
		return nil, err
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Deactivate baja lógica; el historial se conserva.
func (uc *ItemUseCase) Deactivate(ctx context.Context, id string) error {
	return uc.repo.SetActive(ctx, id, false)
}

// List lista el catálogo con filtros, orden y paginación.
func (uc *ItemUseCase) List(ctx context.Context, q dto.ItemListQuery) (*dto.ItemListResponse, error) {
	q.DefaultPage()
	f := repository.ItemFilter{
		Search:          strings.TrimSpace(q.Search),
		Category:        strings.ToUpper(strings.TrimSpace(q.Category)),
		LowStock:        q.LowStock,
		Expired:         q.Expired,
		Today:           inventory.DateOnly(uc.classifier.Now()),
		IncludeInactive: q.IncludeInactive,
		SortBy:          q.Sort,
		Limit:           q.Limit,
		Offset:          q.Offset,
	}
	if f.Category != "" && !entity.ValidCategory(f.Category) {
		return nil, fmt.Errorf("%w: categoría %q", domain.ErrInvalidInput, q.Category)
	}
	switch f.SortBy {
	case "":
		f.SortBy = repository.SortByName
	case repository.SortByName, repository.SortBySKU, repository.SortByQuantity,
		repository.SortByUnitPrice, repository.SortByExpiryDate:
	default:
		return nil, fmt.Errorf("%w: orden %q", domain.ErrInvalidInput, q.Sort)
	}
	switch strings.ToLower(q.Order) {
	case "", "asc":
	case "desc":
		f.SortDesc = true
	default:
		return nil, fmt.Errorf("%w: dirección %q (asc|desc)", domain.ErrInvalidInput, q.Order)
	}

	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, appinv.ToItemResponse(it, uc.classifier))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

func (uc *ItemUseCase) checkSupplier(ctx context.Context, supplierID string) error {
	if supplierID == "" {
		return nil
	}
	s, err := uc.supplierRepo.GetByID(ctx, supplierID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: proveedor %s no existe", domain.ErrInvalidInput, supplierID)
		}
		return err
	}
	if !s.IsActive {
		return fmt.Errorf("%w: proveedor %s inactivo", domain.ErrInvalidInput, supplierID)
	}
	return nil
}

func validateItemFields(name, category, unit string, threshold int, negativePrice bool) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	if !entity.ValidCategory(category) {
		return fmt.Errorf("%w: categoría %q", domain.ErrInvalidInput, category)
	}
	if !entity.ValidUnit(unit) {
		return fmt.Errorf("%w: unidad %q", domain.ErrInvalidInput, unit)
	}
	if threshold < 0 || threshold > entity.MaxQuantity {
		return fmt.Errorf("%w: reorder_threshold fuera de rango (0 a %d)", domain.ErrInvalidInput, entity.MaxQuantity)
	}
	if negativePrice {
		return fmt.Errorf("%w: unit_price no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
