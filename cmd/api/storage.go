package main

import (
	"context"
	"fmt"

	appinv "github.com/pawsitive-care/inventory-api/internal/application/inventory"
	"github.com/pawsitive-care/inventory-api/internal/application/purchasing"
	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
	"github.com/pawsitive-care/inventory-api/internal/infrastructure/memory"
	"github.com/pawsitive-care/inventory-api/internal/infrastructure/postgres"
	"github.com/pawsitive-care/inventory-api/pkg/config"
	"github.com/pawsitive-care/inventory-api/pkg/logger"
)

type txRunner interface {
	appinv.TxRunner
	purchasing.TxRunner
}

// storage repositorios del backend elegido por APP_STORAGE.
type storage struct {
	items          repository.ItemRepository
	movements      repository.StockMovementRepository
	suppliers      repository.SupplierRepository
	purchaseOrders repository.PurchaseOrderRepository
	users          repository.UserRepository
	analytics      repository.AnalyticsRepository
	tx             txRunner
	close          func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	switch cfg.App.Storage {
	case "memory":
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &storage{
			items:          store.Items(),
			movements:      store.Movements(),
			suppliers:      store.Suppliers(),
			purchaseOrders: store.PurchaseOrders(),
			users:          store.Users(),
			analytics:      store.Analytics(),
			tx:             memory.NewTxRunner(store),
			close:          func() {},
		}, nil
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
			log.Info().Msg("esquema aplicado")
		}
		return &storage{
			items:          postgres.NewItemRepository(pool),
			movements:      postgres.NewStockMovementRepository(pool),
			suppliers:      postgres.NewSupplierRepository(pool),
			purchaseOrders: postgres.NewPurchaseOrderRepository(pool),
			users:          postgres.NewUserRepository(pool),
			analytics:      postgres.NewAnalyticsRepository(pool),
			tx:             postgres.NewTxRunner(pool),
			close:          pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("APP_STORAGE desconocido %q", cfg.App.Storage)
	}
}
