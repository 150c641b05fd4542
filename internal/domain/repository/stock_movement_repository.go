package repository

import (
	"context"
	"time"

	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
)

// MovementFilter filtros del reporte de movimientos. Limit <= 0 sin límite.
type MovementFilter struct {
	ItemID string
	Type   string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// StockMovementRepository define el puerto de persistencia del ledger. Solo inserta y lee.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListByItem historial de un artículo, más reciente primero.
	ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.StockMovement, int, error)
	// ListChain todos los movimientos de un artículo, más antiguo primero (reconciliación).
	ListChain(ctx context.Context, itemID string) ([]*entity.StockMovement, error)
	// List reporte filtrado, más reciente primero.
	List(ctx context.Context, f MovementFilter) ([]*entity.StockMovement, error)
	CountByType(ctx context.Context, f MovementFilter) (map[string]int, error)
}
