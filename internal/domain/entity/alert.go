package entity

import "time"

// AlertEvent señal "cambió la condición de alerta" de un artículo, emitida tras confirmar un movimiento.
// Los notificadores externos (email/SMS) se suscriben a ella; el núcleo no entrega notificaciones.
type AlertEvent struct {
	ItemID         string    `json:"item_id"`
	SKU            string    `json:"sku"`
	Name           string    `json:"name"`
	PreviousStatus string    `json:"previous_status"`
	Status         string    `json:"status"`
	PreviousExpiry string    `json:"previous_expiry_status"`
	ExpiryStatus   string    `json:"expiry_status"`
	Quantity       int       `json:"quantity"`
	Threshold      int       `json:"reorder_threshold"`
	MovementID     string    `json:"movement_id,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
