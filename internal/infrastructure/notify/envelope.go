package notify

import (
	"time"

	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
)

const alertEventType = "inventory.alert_changed"

// envelope formato común de los mensajes publicados.
type envelope struct {
	Type      string            `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	Payload   entity.AlertEvent `json:"payload"`
}
