package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pawsitive-care/inventory-api/internal/domain"
	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/internal/domain/inventory"
	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación en memoria de ItemRepository.
type ItemRepo struct {
	s    *Store
	inTx bool
}

func (r *ItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	defer r.s.guard(r.inTx)()
	if _, ok := r.s.data.items[item.ID]; ok {
		return fmt.Errorf("%w: id %s", domain.ErrDuplicate, item.ID)
	}
	for _, it := range r.s.data.items {
		if it.SKU == item.SKU {
			return fmt.Errorf("%w: sku %s", domain.ErrDuplicate, item.SKU)
		}
	}
	r.s.data.items[item.ID] = *item
	return nil
}

func (r *ItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	defer r.s.guard(r.inTx)()
	it, ok := r.s.data.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &it, nil
}

func (r *ItemRepo) GetBySKU(_ context.Context, sku string) (*entity.InventoryItem, error) {
	defer r.s.guard(r.inTx)()
	for _, it := range r.s.data.items {
		if it.SKU == sku {
			return &it, nil
		}
	}
	return nil, domain.ErrNotFound
}

// GetForUpdate dentro de Run el candado global ya está tomado.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

func (r *ItemRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	defer r.s.guard(r.inTx)()
	cur, ok := r.s.data.items[item.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for id, it := range r.s.data.items {
		if id != item.ID && it.SKU == item.SKU {
			return fmt.Errorf("%w: sku %s", domain.ErrDuplicate, item.SKU)
		}
	}
	upd := *item
	upd.Quantity = cur.Quantity
	upd.LastRestockedAt = cur.LastRestockedAt
	upd.CreatedAt = cur.CreatedAt
	r.s.data.items[item.ID] = upd
	return nil
}

func (r *ItemRepo) UpdateQuantity(_ context.Context, id string, expected, newQty int, restockedAt *time.Time) error {
	defer r.s.guard(r.inTx)()
	cur, ok := r.s.data.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Quantity != expected {
		return domain.ErrConcurrentConflict
	}
	cur.Quantity = newQty
	cur.UpdatedAt = time.Now()
	if restockedAt != nil {
		t := *restockedAt
		cur.LastRestockedAt = &t
	}
	r.s.data.items[id] = cur
	return nil
}

func (r *ItemRepo) SetActive(_ context.Context, id string, active bool) error {
	defer r.s.guard(r.inTx)()
	cur, ok := r.s.data.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	cur.IsActive = active
	cur.UpdatedAt = time.Now()
	r.s.data.items[id] = cur
	return nil
}

func (r *ItemRepo) List(_ context.Context, f repository.ItemFilter) ([]*entity.InventoryItem, int, error) {
	defer r.s.guard(r.inTx)()
	today := f.Today
	if today.IsZero() {
		today = time.Now()
	}
	today = inventory.DateOnly(today)
	search := strings.ToLower(strings.TrimSpace(f.Search))

	var out []*entity.InventoryItem
	for _, it := range r.s.data.items {
		if !f.IncludeInactive && !it.IsActive {
			continue
		}
		if f.Category != "" && it.Category != f.Category {
			continue
		}
		if f.SupplierID != "" && it.SupplierID != f.SupplierID {
			continue
		}
		if f.LowStock && it.Quantity > it.ReorderThreshold {
			continue
		}
		if f.Expired && (it.ExpiryDate == nil || !inventory.DateOnly(*it.ExpiryDate).Before(today)) {
			continue
		}
		if !f.ExpiringBefore.IsZero() && (it.ExpiryDate == nil || inventory.DateOnly(*it.ExpiryDate).After(inventory.DateOnly(f.ExpiringBefore))) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(it.Name), search) &&
			!strings.Contains(strings.ToLower(it.SKU), search) &&
			!strings.Contains(strings.ToLower(it.Description), search) {
			continue
		}
		c := it
		out = append(out, &c)
	}

	sortItems(out, f.SortBy, f.SortDesc)
	total := len(out)
	return paginate(out, f.Limit, f.Offset), total, nil
}

// sortItems replica ORDER BY <col> [DESC] NULLS LAST, sku ASC: desc solo invierte la columna principal.
func sortItems(items []*entity.InventoryItem, by string, desc bool) {
	cmp := func(a, b *entity.InventoryItem) int {
		switch by {
		case repository.SortBySKU:
			return strings.Compare(a.SKU, b.SKU)
		case repository.SortByQuantity:
			return a.Quantity - b.Quantity
		case repository.SortByUnitPrice:
			return a.UnitPrice.Cmp(b.UnitPrice)
		case repository.SortByExpiryDate:
			return a.ExpiryDate.Compare(*b.ExpiryDate)
		default:
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if by == repository.SortByExpiryDate && (a.ExpiryDate == nil || b.ExpiryDate == nil) {
			// sin fecha al final, también en desc
			if (a.ExpiryDate == nil) != (b.ExpiryDate == nil) {
				return b.ExpiryDate == nil
			}
			return a.SKU < b.SKU
		}
		c := cmp(a, b)
		if desc {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		return a.SKU < b.SKU
	})
}

func paginate[T any](in []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(in) {
		return []T{}
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
