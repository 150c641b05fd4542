package notify

import (
	"context"

	appinv "github.com/pawsitive-care/inventory-api/internal/application/inventory"
	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/pkg/logger"
)

var _ appinv.AlertSubscriber = (*LogNotifier)(nil)

// LogNotifier escribe cada alerta como evento estructurado.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier crea el suscriptor de log.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log.Named("alert")}
}

func (n *LogNotifier) Name() string { return "log" }

// Notify nunca falla.
func (n *LogNotifier) Notify(_ context.Context, e entity.AlertEvent) error {
	n.log.Warn().
		Str("item_id", e.ItemID).
		Str("sku", e.SKU).
		Str("previous_status", e.PreviousStatus).
		Str("status", e.Status).
		Str("previous_expiry_status", e.PreviousExpiry).
		Str("expiry_status", e.ExpiryStatus).
		Int("quantity", e.Quantity).
		Int("reorder_threshold", e.Threshold).
		Str("movement_id", e.MovementID).
		Time("occurred_at", e.OccurredAt).
		Msg("cambio en la condición de alerta")
	return nil
}
