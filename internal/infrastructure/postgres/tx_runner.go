package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pawsitive-care/inventory-api/internal/application/inventory"
	"github.com/pawsitive-care/inventory-api/internal/application/purchasing"
	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and purchasing.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ purchasing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewItemRepository(tx), NewStockMovementRepository(tx))
	})
}

// RunPurchasing inicia una transacción con repos de inventario y órdenes de compra (para recepción).
func (r *TxRunner) RunPurchasing(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.StockMovementRepository,
	poRepo repository.PurchaseOrderRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewItemRepository(tx), NewStockMovementRepository(tx), NewPurchaseOrderRepository(tx))
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return wrapErr("commit transaction", err)
	}
	return nil
}
