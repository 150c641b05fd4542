// Package inventory contiene servicios de dominio puros del inventario: clasificación de estado,
// precios, generación de SKU y verificación del ledger de movimientos.
package inventory

import "time"

// Estado de stock derivado de cantidad vs umbral de reorden.
const (
	StockNormal     = "normal"
	StockLow        = "low_stock"
	StockOutOfStock = "out_of_stock"
)

// Estado de vencimiento derivado de la fecha de expiración.
const (
	ExpiryNotExpiring = "not_expiring"
	ExpiringSoon      = "expiring_soon"
	ExpiryExpired     = "expired"
	DefaultExpiryDays = 30
)

// ClassifyStock: 0 agotado; 0 < q <= umbral bajo; resto normal.
func ClassifyStock(quantity, threshold int) string {
	switch {
	case quantity <= 0:
		return StockOutOfStock
	case quantity <= threshold:
		return StockLow
	default:
		return StockNormal
	}
}

// ClassifyExpiry compara a granularidad de día. Sin fecha nunca vence.
// Vencido si expiry < today; por vencer si expiry <= today + windowDays.
func ClassifyExpiry(expiry *time.Time, today time.Time, windowDays int) string {
	if expiry == nil {
		return ExpiryNotExpiring
	}
	e := DateOnly(*expiry)
	t := DateOnly(today)
	if e.Before(t) {
		return ExpiryExpired
	}
	if !e.After(t.AddDate(0, 0, windowDays)) {
		return ExpiringSoon
	}
	return ExpiryNotExpiring
}

// DateOnly trunca a medianoche UTC conservando el día calendario de t.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysUntil días calendario entre today y expiry (negativo si ya venció).
func DaysUntil(expiry, today time.Time) int {
	return int(DateOnly(expiry).Sub(DateOnly(today)).Hours() / 24)
}

// NeedsAttention informa si alguno de los dos estados amerita alerta.
func NeedsAttention(stockStatus, expiryStatus string) bool {
	return stockStatus != StockNormal || expiryStatus != ExpiryNotExpiring
}

// Classifier agrupa la ventana de vencimiento y el reloj para clasificar en tiempo de lectura.
type Classifier struct {
	WindowDays int
	Now        func() time.Time
}

// NewClassifier crea el clasificador; windowDays negativo usa DefaultExpiryDays.
func NewClassifier(windowDays int) *Classifier {
	if windowDays < 0 {
		windowDays = DefaultExpiryDays
	}
	return &Classifier{WindowDays: windowDays, Now: time.Now}
}

// Status devuelve (stock, vencimiento) para la cantidad, umbral y fecha dados.
func (c *Classifier) Status(quantity, threshold int, expiry *time.Time) (string, string) {
	return ClassifyStock(quantity, threshold), ClassifyExpiry(expiry, c.Now(), c.WindowDays)
}
