package inventory

import (
	"context"

	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; ninguna escritura parcial queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// AlertSubscriber recibe la señal "cambió la condición de alerta" después del commit.
// Implementaciones: notify.LogNotifier, notify.RabbitMQPublisher, notify.RedisPublisher.
type AlertSubscriber interface {
	Name() string
	Notify(ctx context.Context, event entity.AlertEvent) error
}

// ReportGenerator genera el reporte PDF de stock (infrastructure/pdf).
type ReportGenerator interface {
	GenerateStockReport(data StockReportData) ([]byte, error)
}
