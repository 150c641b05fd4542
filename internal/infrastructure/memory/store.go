// Package memory implementa los puertos de persistencia en memoria con un candado global.
// Las transacciones se serializan y un error restaura la foto tomada al iniciar.
package memory

import (
	"context"
	"sync"

	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
)

type state struct {
	items     map[string]entity.InventoryItem
	movements []entity.StockMovement
	suppliers map[string]entity.Supplier
	orders    map[string]entity.PurchaseOrder
	users     map[string]entity.User
}

func newState() state {
	return state{
		items:     make(map[string]entity.InventoryItem),
		suppliers: make(map[string]entity.Supplier),
		orders:    make(map[string]entity.PurchaseOrder),
		users:     make(map[string]entity.User),
	}
}

func (s state) clone() state {
	c := newState()
	for k, v := range s.items {
		c.items[k] = v
	}
	c.movements = append([]entity.StockMovement(nil), s.movements...)
	for k, v := range s.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range s.orders {
		v.Items = append([]entity.PurchaseOrderItem(nil), v.Items...)
		c.orders[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

// Store almacén compartido por todos los repositorios en memoria.
type Store struct {
	mu   sync.Mutex
	data state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// guard toma el candado global salvo que la operación ya corra dentro de una transacción.
func (s *Store) guard(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// Items repositorio de artículos fuera de transacción.
func (s *Store) Items() *ItemRepo { return &ItemRepo{s: s} }

// Movements repositorio del ledger fuera de transacción.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }

// Suppliers repositorio de proveedores.
func (s *Store) Suppliers() *SupplierRepo { return &SupplierRepo{s: s} }

// PurchaseOrders repositorio de órdenes de compra fuera de transacción.
func (s *Store) PurchaseOrders() *PurchaseOrderRepo { return &PurchaseOrderRepo{s: s} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Analytics consultas agregadas.
func (s *Store) Analytics() *AnalyticsRepo { return &AnalyticsRepo{s: s} }

// TxRunner implementa inventory.TxRunner y purchasing.TxRunner sobre el Store.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

func (r *TxRunner) begin(ctx context.Context) (func(commit bool), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	snapshot := r.s.data.clone()
	return func(commit bool) {
		if !commit {
			r.s.data = snapshot
		}
		r.s.mu.Unlock()
	}, nil
}

// Run ejecuta fn con repos atados a la "transacción"; error -> rollback a la foto previa.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	end, err := r.begin(ctx)
	if err != nil {
		return err
	}
	err = fn(&ItemRepo{s: r.s, inTx: true}, &MovementRepo{s: r.s, inTx: true})
	end(err == nil)
	return err
}

// RunPurchasing igual que Run, con el repositorio de órdenes de compra.
func (r *TxRunner) RunPurchasing(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.StockMovementRepository,
	poRepo repository.PurchaseOrderRepository,
) error) error {
	end, err := r.begin(ctx)
	if err != nil {
		return err
	}
	err = fn(&ItemRepo{s: r.s, inTx: true}, &MovementRepo{s: r.s, inTx: true}, &PurchaseOrderRepo{s: r.s, inTx: true})
	end(err == nil)
	return err
}
