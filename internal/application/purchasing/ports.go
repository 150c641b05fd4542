package purchasing

import (
	"context"

	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
)

// TxRunner transacción que además de artículos y ledger incluye las órdenes de compra.
// La recepción actualiza líneas y stock en la misma transacción.
type TxRunner interface {
	RunPurchasing(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.StockMovementRepository,
		poRepo repository.PurchaseOrderRepository,
	) error) error
}
