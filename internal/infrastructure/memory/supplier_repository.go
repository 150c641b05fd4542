package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/pawsitive-care/inventory-api/internal/domain"
	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo proveedores en memoria.
type SupplierRepo struct {
	s *Store
}

func (r *SupplierRepo) Create(_ context.Context, sup *entity.Supplier) error {
	defer r.s.guard(false)()
	if _, ok := r.s.data.suppliers[sup.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.data.suppliers[sup.ID] = *sup
	return nil
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	defer r.s.guard(false)()
	sup, ok := r.s.data.suppliers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &sup, nil
}

func (r *SupplierRepo) Update(_ context.Context, sup *entity.Supplier) error {
	defer r.s.guard(false)()
	cur, ok := r.s.data.suppliers[sup.ID]
	if !ok {
		return domain.ErrNotFound
	}
	upd := *sup
	upd.CreatedAt = cur.CreatedAt
	r.s.data.suppliers[sup.ID] = upd
	return nil
}

func (r *SupplierRepo) List(_ context.Context, includeInactive bool, limit, offset int) ([]*entity.Supplier, int, error) {
	defer r.s.guard(false)()
	var out []*entity.Supplier
	for _, sup := range r.s.data.suppliers {
		if !includeInactive && !sup.IsActive {
			continue
		}
		c := sup
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return paginate(out, limit, offset), len(out), nil
}
