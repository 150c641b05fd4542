package repository

import (
	"context"
	"time"

	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
)

// Columnas permitidas para ordenar el listado de artículos.
const (
	SortByName       = "name"
	SortBySKU        = "sku"
	SortByQuantity   = "quantity"
	SortByUnitPrice  = "unit_price"
	SortByExpiryDate = "expiry_date"
)

// ItemFilter criterios de búsqueda del catálogo. Limit <= 0 devuelve todo (uso interno: export, alertas).
type ItemFilter struct {
	Search          string // nombre, SKU o descripción (contiene, sin distinguir mayúsculas)
	Category        string
	SupplierID      string
	LowStock        bool      // quantity <= reorder_threshold
	Expired         bool      // expiry_date < Today
	ExpiringBefore  time.Time // si no es cero: expiry_date <= ExpiringBefore
	Today           time.Time
	IncludeInactive bool
	SortBy          string
	SortDesc        bool
	Limit           int
	Offset          int
}

// ItemRepository define el puerto de persistencia para InventoryItem (DIP).
// La cantidad solo se modifica con UpdateQuantity dentro de la transacción de un movimiento.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	GetBySKU(ctx context.Context, sku string) (*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE) hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	// Update persiste todo excepto quantity y last_restocked_at.
	Update(ctx context.Context, item *entity.InventoryItem) error
	// UpdateQuantity compare-and-set: solo escribe si la cantidad sigue siendo expected; si no, domain.ErrConcurrentConflict.
	UpdateQuantity(ctx context.Context, id string, expected, newQty int, restockedAt *time.Time) error
	SetActive(ctx context.Context, id string, active bool) error
	List(ctx context.Context, f ItemFilter) ([]*entity.InventoryItem, int, error)
}
