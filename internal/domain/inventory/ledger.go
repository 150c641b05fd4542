package inventory

import (
	"fmt"

	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
)

// Tipos de hallazgo de la verificación del ledger.
const (
	IssueBrokenLink = "BROKEN_LINK" // before != after del movimiento anterior
	IssueArithmetic = "ARITHMETIC"  // after != before + delta
	IssueDrift      = "DRIFT"       // ledger plegado != cantidad almacenada
)

// LedgerIssue hallazgo puntual; MovementID vacío para DRIFT.
type LedgerIssue struct {
	Type       string
	MovementID string
	Expected   int
	Actual     int
	Details    string
}

// LedgerReport resultado de plegar el ledger de un artículo desde 0.
type LedgerReport struct {
	ItemID         string
	StoredQuantity int
	LedgerQuantity int
	MovementCount  int
	DeltaSum       int // difiere de LedgerQuantity si hay eslabones rotos o errores aritméticos
	Issues         []LedgerIssue
}

// Consistent true si no hay hallazgos.
func (r *LedgerReport) Consistent() bool { return len(r.Issues) == 0 }

// VerifyChain pliega los movimientos (más antiguo primero) partiendo de 0 y los contrasta con la
// cantidad almacenada. Solo reporta; nunca repara.
func VerifyChain(itemID string, stored int, movements []*entity.StockMovement) *LedgerReport {
	rep := &LedgerReport{
		ItemID:         itemID,
		StoredQuantity: stored,
		MovementCount:  len(movements),
		DeltaSum:       SumDeltas(movements),
	}
	running := 0
	for _, m := range movements {
		if m.QuantityBefore != running {
			rep.Issues = append(rep.Issues, LedgerIssue{
				Type:       IssueBrokenLink,
				MovementID: m.ID,
				Expected:   running,
				Actual:     m.QuantityBefore,
				Details:    fmt.Sprintf("quantity_before %d no coincide con el saldo previo %d", m.QuantityBefore, running),
			})
		}
		if m.QuantityAfter != m.QuantityBefore+m.Delta {
			rep.Issues = append(rep.Issues, LedgerIssue{
				Type:       IssueArithmetic,
				MovementID: m.ID,
				Expected:   m.QuantityBefore + m.Delta,
				Actual:     m.QuantityAfter,
				Details:    fmt.Sprintf("%d %+d debería dar %d, registrado %d", m.QuantityBefore, m.Delta, m.QuantityBefore+m.Delta, m.QuantityAfter),
			})
		}
		running = m.QuantityAfter
	}
	rep.LedgerQuantity = running
	if running != stored {
		rep.Issues = append(rep.Issues, LedgerIssue{
			Type:     IssueDrift,
			Expected: running,
			Actual:   stored,
			Details:  fmt.Sprintf("cantidad almacenada %d difiere del ledger %d", stored, running),
		})
	}
	return rep
}

// SumDeltas suma de deltas; con ledger íntegro equivale a la cantidad actual.
func SumDeltas(movements []*entity.StockMovement) int {
	total := 0
	for _, m := range movements {
		total += m.Delta
	}
	return total
}
