package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para dashboard y reporte PDF.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetStockSummary conteos de artículos activos por estado y valor total del stock.
// Las reglas replican inventory.ClassifyStock / ClassifyExpiry a nivel de SQL:
//   - out_of_stock: quantity = 0
//   - low_stock:    0 < quantity <= reorder_threshold
//   - expired:      expiry_date < today
//   - expiring:     today <= expiry_date <= windowEnd
func (r *AnalyticsRepo) GetStockSummary(ctx context.Context, today, windowEnd time.Time) (*repository.StockSummary, error) {
	const query = `
	SELECT
	    COUNT(*)                                                                   AS total_items,
	    COUNT(*) FILTER (WHERE quantity > 0 AND quantity <= reorder_threshold)     AS low_stock,
	    COUNT(*) FILTER (WHERE quantity = 0)                                       AS out_of_stock,
	    COUNT(*) FILTER (WHERE expiry_date >= $1::date AND expiry_date <= $2::date) AS expiring_soon,
	    COUNT(*) FILTER (WHERE expiry_date < $1::date)                             AS expired,
	    COALESCE(SUM(quantity * unit_price), 0)                                    AS total_value
	FROM inventory_items
	WHERE is_active`

	var s repository.StockSummary
	err := r.pool.QueryRow(ctx, query, today.Format("2006-01-02"), windowEnd.Format("2006-01-02")).Scan(
		&s.TotalItems, &s.LowStock, &s.OutOfStock, &s.ExpiringSoon, &s.Expired, &s.TotalValue,
	)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetStockSummary: %w", err)
	}
	return &s, nil
}

// GetCategoryBreakdown artículos, unidades y valor por categoría (solo activos).
func (r *AnalyticsRepo) GetCategoryBreakdown(ctx context.Context) ([]repository.CategoryStat, error) {
	const query = `
	SELECT category, COUNT(*), COALESCE(SUM(quantity), 0), COALESCE(SUM(quantity * unit_price), 0)
	FROM inventory_items
	WHERE is_active
	GROUP BY category
	ORDER BY category`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetCategoryBreakdown: %w", err)
	}
	defer rows.Close()

	var results []repository.CategoryStat
	for rows.Next() {
		var row repository.CategoryStat
		if err := rows.Scan(&row.Category, &row.Items, &row.Units, &row.TotalValue); err != nil {
			return nil, fmt.Errorf("analytics.GetCategoryBreakdown scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetSupplierBreakdown artículos activos y valor por proveedor; LEFT JOIN para incluir proveedores sin stock.
func (r *AnalyticsRepo) GetSupplierBreakdown(ctx context.Context) ([]repository.SupplierStat, error) {
	const query = `
	SELECT s.id, s.name, s.is_active,
	       COUNT(i.id),
	       COALESCE(SUM(i.quantity), 0),
	       COALESCE(SUM(i.quantity * i.unit_price), 0) AS total_value
	FROM suppliers s
	LEFT JOIN inventory_items i ON i.supplier_id = s.id AND i.is_active
	GROUP BY s.id, s.name, s.is_active
	ORDER BY total_value DESC, s.name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetSupplierBreakdown: %w", err)
	}
	defer rows.Close()

	var results []repository.SupplierStat
	for rows.Next() {
		var row repository.SupplierStat
		if err := rows.Scan(&row.SupplierID, &row.Name, &row.IsActive, &row.Items, &row.Units, &row.TotalValue); err != nil {
			return nil, fmt.Errorf("analytics.GetSupplierBreakdown scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
