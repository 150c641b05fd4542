package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/pawsitive-care/inventory-api/internal/application/dto"
	"github.com/pawsitive-care/inventory-api/internal/domain"
	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/internal/domain/inventory"
)

// ToItemResponse mapea el artículo con sus estados recalculados.
func ToItemResponse(item *entity.InventoryItem, c *inventory.Classifier) dto.ItemResponse {
	stock, expiry := c.Status(item.Quantity, item.ReorderThreshold, item.ExpiryDate)
	return dto.ItemResponse{
		ID:               item.ID,
		SKU:              item.SKU,
		Name:             item.Name,
		Description:      item.Description,
		Category:         item.Category,
		Unit:             item.Unit,
		Quantity:         item.Quantity,
		ReorderThreshold: item.ReorderThreshold,
		UnitPrice:        item.UnitPrice,
		StockValue:       item.StockValue(),
		ExpiryDate:       FormatDate(item.ExpiryDate),
		SupplierID:       item.SupplierID,
		StockStatus:      stock,
		ExpiryStatus:     expiry,
		LastRestockedAt:  item.LastRestockedAt,
		IsActive:         item.IsActive,
		CreatedAt:        item.CreatedAt,
		UpdatedAt:        item.UpdatedAt,
	}
}

// ToItemStatus vista reducida usada por alertas y dashboard.
func ToItemStatus(item *entity.InventoryItem, c *inventory.Classifier) dto.ItemStatusResponse {
	stock, expiry := c.Status(item.Quantity, item.ReorderThreshold, item.ExpiryDate)
	return dto.ItemStatusResponse{
		ItemID:           item.ID,
		SKU:              item.SKU,
		Name:             item.Name,
		Quantity:         item.Quantity,
		ReorderThreshold: item.ReorderThreshold,
		StockStatus:      stock,
		ExpiryDate:       FormatDate(item.ExpiryDate),
		ExpiryStatus:     expiry,
	}
}

// ToMovementResponse mapea un movimiento del ledger.
func ToMovementResponse(m *entity.StockMovement, sku string) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		ItemID:         m.ItemID,
		SKU:            sku,
		Type:           m.Type,
		Delta:          m.Delta,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		Reason:         m.Reason,
		Note:           m.Note,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
	}
}

// ToMovementResultResponse artículo + movimiento (si lo hubo).
func ToMovementResultResponse(r *MovementResult, c *inventory.Classifier) dto.MovementResultResponse {
	out := dto.MovementResultResponse{Item: ToItemResponse(r.Item, c)}
	if r.Movement != nil {
		m := ToMovementResponse(r.Movement, r.Item.SKU)
		out.Movement = &m
	}
	return out
}

// FormatDate YYYY-MM-DD o nil.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dto.DateLayout)
	return &s
}

// ParseDate interpreta YYYY-MM-DD; vacío devuelve nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha inválida %q (use YYYY-MM-DD)", domain.ErrInvalidInput, s)
	}
	return &t, nil
}
