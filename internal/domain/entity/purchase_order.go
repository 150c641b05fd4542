package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	POStatusDraft     = "DRAFT"
	POStatusPending   = "PENDING"
	POStatusApproved  = "APPROVED"
	POStatusOrdered   = "ORDERED"
	POStatusReceived  = "RECEIVED"
	POStatusCancelled = "CANCELLED"
)

// poTransitions transiciones manuales permitidas. RECEIVED solo se alcanza al recibir mercancía.
var poTransitions = map[string][]string{
	POStatusDraft:    {POStatusPending, POStatusCancelled},
	POStatusPending:  {POStatusApproved, POStatusCancelled},
	POStatusApproved: {POStatusOrdered, POStatusCancelled},
	POStatusOrdered:  {POStatusCancelled},
}

// CanTransition informa si la orden puede pasar de from a to manualmente.
func CanTransition(from, to string) bool {
	for _, s := range poTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// PurchaseOrder orden de reposición a un proveedor.
type PurchaseOrder struct {
	ID               string
	OrderNumber      string // YYYYMMDD-XXXXXX
	SupplierID       string
	Status           string
	ExpectedDelivery *time.Time
	TotalAmount      decimal.Decimal
	Notes            string
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Items            []PurchaseOrderItem
}

// CanReceive informa si la orden admite recepción de mercancía.
func (po *PurchaseOrder) CanReceive() bool {
	return po.Status == POStatusApproved || po.Status == POStatusOrdered
}

// FullyReceived es true cuando todas las líneas recibieron lo pedido.
func (po *PurchaseOrder) FullyReceived() bool {
	if len(po.Items) == 0 {
		return false
	}
	for _, l := range po.Items {
		if l.QuantityReceived < l.QuantityOrdered {
			return false
		}
	}
	return true
}

// PurchaseOrderItem línea de una orden: cantidad pedida vs recibida.
// Invariante de aplicación: QuantityReceived <= QuantityOrdered.
type PurchaseOrderItem struct {
	ID               string
	PurchaseOrderID  string
	ItemID           string
	QuantityOrdered  int
	QuantityReceived int
	UnitPrice        decimal.Decimal
	TotalPrice       decimal.Decimal // QuantityOrdered * UnitPrice
}

// Pending cantidad aún no recibida.
func (l *PurchaseOrderItem) Pending() int {
	return l.QuantityOrdered - l.QuantityReceived
}
