package repository

import (
	"context"

	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
)

// PurchaseOrderFilter filtros del listado de órdenes.
type PurchaseOrderFilter struct {
	Status     string
	SupplierID string
	Limit      int
	Offset     int
}

// PurchaseOrderRepository persistencia de órdenes de compra y sus líneas.
type PurchaseOrderRepository interface {
	// Create inserta cabecera y líneas.
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la cabecera; devuelve las líneas.
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	List(ctx context.Context, f PurchaseOrderFilter) ([]*entity.PurchaseOrder, int, error)
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateLineReceived(ctx context.Context, lineID string, received int) error
}
