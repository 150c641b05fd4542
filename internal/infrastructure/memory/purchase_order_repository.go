package memory

import (
	"context"
	"sort"
	"time"

	"github.com/pawsitive-care/inventory-api/internal/domain"
	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo órdenes de compra en memoria.
type PurchaseOrderRepo struct {
	s    *Store
	inTx bool
}

func clonePO(po entity.PurchaseOrder) *entity.PurchaseOrder {
	po.Items = append([]entity.PurchaseOrderItem(nil), po.Items...)
	return &po
}

func (r *PurchaseOrderRepo) Create(_ context.Context, po *entity.PurchaseOrder) error {
	defer r.s.guard(r.inTx)()
	for _, o := range r.s.data.orders {
		if o.ID == po.ID || o.OrderNumber == po.OrderNumber {
			return domain.ErrDuplicate
		}
	}
	r.s.data.orders[po.ID] = *clonePO(*po)
	return nil
}

func (r *PurchaseOrderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	defer r.s.guard(r.inTx)()
	po, ok := r.s.data.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clonePO(po), nil
}

func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *PurchaseOrderRepo) List(_ context.Context, f repository.PurchaseOrderFilter) ([]*entity.PurchaseOrder, int, error) {
	defer r.s.guard(r.inTx)()
	var out []*entity.PurchaseOrder
	for _, po := range r.s.data.orders {
		if f.Status != "" && po.Status != f.Status {
			continue
		}
		if f.SupplierID != "" && po.SupplierID != f.SupplierID {
			continue
		}
		out = append(out, clonePO(po))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].OrderNumber > out[j].OrderNumber
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return paginate(out, f.Limit, f.Offset), len(out), nil
}

func (r *PurchaseOrderRepo) UpdateStatus(_ context.Context, id, status string) error {
	defer r.s.guard(r.inTx)()
	po, ok := r.s.data.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	po.Status = status
	po.UpdatedAt = time.Now()
	r.s.data.orders[id] = po
	return nil
}

func (r *PurchaseOrderRepo) UpdateLineReceived(_ context.Context, lineID string, received int) error {
	defer r.s.guard(r.inTx)()
	for id, po := range r.s.data.orders {
		for i := range po.Items {
			if po.Items[i].ID != lineID {
				continue
			}
			items := append([]entity.PurchaseOrderItem(nil), po.Items...)
			items[i].QuantityReceived = received
			po.Items = items
			po.UpdatedAt = time.Now()
			r.s.data.orders[id] = po
			return nil
		}
	}
	return domain.ErrNotFound
}
