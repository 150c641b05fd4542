package inventory

import (
	"context"
	"sync"

	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/pkg/logger"
)

// AlertHub lista simple de suscriptores. Dispatch es síncrono y nunca propaga errores:
// un suscriptor caído se registra en el log y no afecta el resultado del movimiento.
type AlertHub struct {
	mu          sync.RWMutex
	subscribers []AlertSubscriber
	log         *logger.Logger
}

// NewAlertHub crea el hub; log puede ser logger.Nop().
func NewAlertHub(log *logger.Logger) *AlertHub {
	if log == nil {
		log = logger.Nop()
	}
	return &AlertHub{log: log.Named("alerts")}
}

// Subscribe agrega un suscriptor.
func (h *AlertHub) Subscribe(s AlertSubscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers = append(h.subscribers, s)
}

// Subscribers cantidad de suscriptores registrados.
func (h *AlertHub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Dispatch entrega el evento a cada suscriptor en orden de registro.
func (h *AlertHub) Dispatch(ctx context.Context, event entity.AlertEvent) {
	h.mu.RLock()
	subs := make([]AlertSubscriber, len(h.subscribers))
	copy(subs, h.subscribers)
	h.mu.RUnlock()

	for _, s := range subs {
		if err := s.Notify(ctx, event); err != nil {
			h.log.Error().Err(err).
				Str("subscriber", s.Name()).
				Str("item_id", event.ItemID).
				Str("status", event.Status).
				Msg("no se pudo notificar la alerta")
		}
	}
}
