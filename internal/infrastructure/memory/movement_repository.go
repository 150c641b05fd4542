package memory

import (
	"context"

	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

// MovementRepo ledger en memoria; el orden de inserción es el orden causal.
type MovementRepo struct {
	s    *Store
	inTx bool
}

func (r *MovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	defer r.s.guard(r.inTx)()
	r.s.data.movements = append(r.s.data.movements, *m)
	return nil
}

func (r *MovementRepo) ListByItem(_ context.Context, itemID string, limit, offset int) ([]*entity.StockMovement, int, error) {
	defer r.s.guard(r.inTx)()
	out := r.newestFirst(repository.MovementFilter{ItemID: itemID})
	return paginate(out, limit, offset), len(out), nil
}

func (r *MovementRepo) ListChain(_ context.Context, itemID string) ([]*entity.StockMovement, error) {
	defer r.s.guard(r.inTx)()
	var out []*entity.StockMovement
	for _, m := range r.s.data.movements {
		if m.ItemID == itemID {
			c := m
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *MovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	defer r.s.guard(r.inTx)()
	return paginate(r.newestFirst(f), f.Limit, f.Offset), nil
}

func (r *MovementRepo) CountByType(_ context.Context, f repository.MovementFilter) (map[string]int, error) {
	defer r.s.guard(r.inTx)()
	counts := map[string]int{
		entity.MovementTypeIN:         0,
		entity.MovementTypeOUT:        0,
		entity.MovementTypeADJUSTMENT: 0,
	}
	for _, m := range r.newestFirst(f) {
		counts[m.Type]++
	}
	return counts, nil
}

func (r *MovementRepo) newestFirst(f repository.MovementFilter) []*entity.StockMovement {
	var out []*entity.StockMovement
	for i := len(r.s.data.movements) - 1; i >= 0; i-- {
		m := r.s.data.movements[i]
		if f.ItemID != "" && m.ItemID != f.ItemID {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		if f.From != nil && m.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && m.CreatedAt.After(*f.To) {
			continue
		}
		c := m
		out = append(out, &c)
	}
	return out
}
