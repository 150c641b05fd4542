package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste (corrección de conteo)
)

// Códigos de motivo (conjunto fijo).
const (
	ReasonRestock    = "restock"
	ReasonSale       = "sale"
	ReasonUse        = "use"
	ReasonDamage     = "damage"
	ReasonExpired    = "expired"
	ReasonCorrection = "correction"
	ReasonReturn     = "return"
)

// Reasons lista los códigos de motivo válidos.
var Reasons = []string{ReasonRestock, ReasonSale, ReasonUse, ReasonDamage, ReasonExpired, ReasonCorrection, ReasonReturn}

// ValidReason informa si r pertenece al conjunto fijo.
func ValidReason(r string) bool {
	for _, k := range Reasons {
		if k == r {
			return true
		}
	}
	return false
}

// ReasonAllowsDelta aplica las reglas de signo: restock solo suma; sale, use, damage y
// expired solo restan; correction y return aceptan ambos signos. Delta 0 nunca es válido.
func ReasonAllowsDelta(reason string, delta int) bool {
	if delta == 0 {
		return false
	}
	switch reason {
	case ReasonRestock:
		return delta > 0
	case ReasonSale, ReasonUse, ReasonDamage, ReasonExpired:
		return delta < 0
	case ReasonCorrection, ReasonReturn:
		return true
	}
	return false
}

// MovementTypeFor deriva el tipo de movimiento a partir del motivo y el signo.
func MovementTypeFor(reason string, delta int) string {
	if reason == ReasonCorrection {
		return MovementTypeADJUSTMENT
	}
	if delta > 0 {
		return MovementTypeIN
	}
	return MovementTypeOUT
}

// StockMovement es una entrada inmutable del libro de movimientos (ledger).
// Invariante: QuantityAfter = QuantityBefore + Delta, y QuantityBefore es el QuantityAfter
// del movimiento anterior del mismo artículo.
type StockMovement struct {
	ID             string
	ItemID         string
	Type           string // IN, OUT, ADJUSTMENT
	Delta          int    // positivo entrada, negativo salida
	QuantityBefore int
	QuantityAfter  int
	Reason         string
	Note           string
	CreatedBy      string // UserID
	CreatedAt      time.Time
}
