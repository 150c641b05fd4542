package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pawsitive-care/inventory-api/internal/domain/inventory"
	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo agregados calculados recorriendo los artículos activos.
type AnalyticsRepo struct {
	s *Store
}

func (r *AnalyticsRepo) GetStockSummary(_ context.Context, today, windowEnd time.Time) (*repository.StockSummary, error) {
	defer r.s.guard(false)()
	today, windowEnd = inventory.DateOnly(today), inventory.DateOnly(windowEnd)
	sum := &repository.StockSummary{TotalValue: decimal.Zero}
	for _, it := range r.s.data.items {
		if !it.IsActive {
			continue
		}
		sum.TotalItems++
		switch inventory.ClassifyStock(it.Quantity, it.ReorderThreshold) {
		case inventory.StockOutOfStock:
			sum.OutOfStock++
		case inventory.StockLow:
			sum.LowStock++
		}
		if it.ExpiryDate != nil {
			e := inventory.DateOnly(*it.ExpiryDate)
			switch {
			case e.Before(today):
				sum.Expired++
			case !e.After(windowEnd):
				sum.ExpiringSoon++
			}
		}
		sum.TotalValue = sum.TotalValue.Add(it.StockValue())
	}
	return sum, nil
}

func (r *AnalyticsRepo) GetCategoryBreakdown(_ context.Context) ([]repository.CategoryStat, error) {
	defer r.s.guard(false)()
	byCat := make(map[string]*repository.CategoryStat)
	for _, it := range r.s.data.items {
		if !it.IsActive {
			continue
		}
		st, ok := byCat[it.Category]
		if !ok {
			st = &repository.CategoryStat{Category: it.Category, TotalValue: decimal.Zero}
			byCat[it.Category] = st
		}
		st.Items++
		st.Units += it.Quantity
		st.TotalValue = st.TotalValue.Add(it.StockValue())
	}
	out := make([]repository.CategoryStat, 0, len(byCat))
	for _, st := range byCat {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (r *AnalyticsRepo) GetSupplierBreakdown(_ context.Context) ([]repository.SupplierStat, error) {
	defer r.s.guard(false)()
	bySup := make(map[string]*repository.SupplierStat, len(r.s.data.suppliers))
	for id, sup := range r.s.data.suppliers {
		bySup[id] = &repository.SupplierStat{SupplierID: id, Name: sup.Name, IsActive: sup.IsActive, TotalValue: decimal.Zero}
	}
	for _, it := range r.s.data.items {
		st, ok := bySup[it.SupplierID]
		if !ok || !it.IsActive {
			continue
		}
		st.Items++
		st.Units += it.Quantity
		st.TotalValue = st.TotalValue.Add(it.StockValue())
	}
	out := make([]repository.SupplierStat, 0, len(bySup))
	for _, st := range bySup {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].TotalValue.Cmp(out[j].TotalValue); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}
