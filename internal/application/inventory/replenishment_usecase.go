package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/pawsitive-care/inventory-api/internal/application/dto"
	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición de artículos en o bajo su umbral de reorden.
type ReplenishmentUseCase struct {
	itemRepo     repository.ItemRepository
	supplierRepo repository.SupplierRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	itemRepo repository.ItemRepository,
	supplierRepo repository.SupplierRepository,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		itemRepo:     itemRepo,
		supplierRepo: supplierRepo,
	}
}

// IdealStock ceil(umbral * 1.5) en aritmética entera.
func IdealStock(threshold int) int {
	return (threshold*3 + 1) / 2
}

// GenerateReplenishmentList devuelve los artículos activos con quantity <= umbral, la cantidad
// sugerida para llegar a IdealStock y un ranking: agotados primero, luego mayor déficit.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {

	// 1. Artículos en o bajo el umbral
	items, _, err := uc.itemRepo.List(ctx, repository.ItemFilter{LowStock: true, SortBy: repository.SortByName})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	// 2. Nombres de proveedores (best effort: un proveedor borrado no bloquea la lista)
	supplierNames := make(map[string]string)
	for _, it := range items {
		if it.SupplierID == "" {
			continue
		}
		if _, ok := supplierNames[it.SupplierID]; ok {
			continue
		}
		if s, err := uc.supplierRepo.GetByID(ctx, it.SupplierID); err == nil && s != nil {
			supplierNames[it.SupplierID] = s.Name
		} else {
			supplierNames[it.SupplierID] = ""
		}
	}

	// 3. Sugerencias
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(items))
	for _, it := range items {
		ideal := IdealStock(it.ReorderThreshold)
		suggested := ideal - it.Quantity
		if suggested < 0 {
			suggested = 0
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ItemID:             it.ID,
			SKU:                it.SKU,
			Name:               it.Name,
			CurrentStock:       it.Quantity,
			ReorderThreshold:   it.ReorderThreshold,
			IdealStock:         ideal,
			SuggestedOrderQty:  suggested,
			UnitPrice:          it.UnitPrice,
			EstimatedOrderCost: it.UnitPrice.Mul(decimal.NewFromInt(int64(suggested))).Round(2),
			SupplierID:         it.SupplierID,
			SupplierName:       supplierNames[it.SupplierID],
		})
	}

	// 4. Ordenar: agotados primero, luego mayor déficit
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if (a.CurrentStock == 0) != (b.CurrentStock == 0) {
			return a.CurrentStock == 0
		}
		return a.SuggestedOrderQty > b.SuggestedOrderQty
	})

	// 5. Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}

	return suggestions, nil
}
