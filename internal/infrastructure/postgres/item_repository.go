package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pawsitive-care/inventory-api/internal/domain"
	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, sku, name, description, category, unit, quantity, reorder_threshold, unit_price,
	expiry_date, supplier_id, last_restocked_at, is_active, created_at, updated_at`

// columnas permitidas en ORDER BY (nunca se interpola texto del cliente).
var itemSortColumns = map[string]string{
	repository.SortByName:       "name",
	repository.SortBySKU:        "sku",
	repository.SortByQuantity:   "quantity",
	repository.SortByUnitPrice:  "unit_price",
	repository.SortByExpiryDate: "expiry_date",
}

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un artículo nuevo. SKU duplicado -> domain.ErrDuplicate.
func (r *ItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.SKU, item.Name, item.Description, item.Category, item.Unit,
		item.Quantity, item.ReorderThreshold, item.UnitPrice, item.ExpiryDate,
		nullable(item.SupplierID), item.LastRestockedAt, item.IsActive, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sku %s", domain.ErrDuplicate, item.SKU)
		}
		return wrapErr("insert item", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.getOne(ctx, "get item", `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id)
}

// GetBySKU obtiene un artículo por SKU.
func (r *ItemRepo) GetBySKU(ctx context.Context, sku string) (*entity.InventoryItem, error) {
	return r.getOne(ctx, "get item by sku", `SELECT `+itemColumns+` FROM inventory_items WHERE sku = $1`, sku)
}

// GetForUpdate obtiene el artículo y bloquea la fila (SELECT FOR UPDATE).
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.getOne(ctx, "get item for update", `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, id)
}

func (r *ItemRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.InventoryItem, error) {
	item, err := scanItem(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, wrapErr(op, err)
	}
	return item, nil
}

// Update actualiza todo excepto quantity y last_restocked_at.
func (r *ItemRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items SET sku = $2, name = $3, description = $4, category = $5, unit = $6,
			reorder_threshold = $7, unit_price = $8, expiry_date = $9, supplier_id = $10, is_active = $11, updated_at = $12
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		item.ID, item.SKU, item.Name, item.Description, item.Category, item.Unit,
		item.ReorderThreshold, item.UnitPrice, item.ExpiryDate, nullable(item.SupplierID), item.IsActive, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sku %s", domain.ErrDuplicate, item.SKU)
		}
		return wrapErr("update item", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantity compare-and-set sobre la cantidad; 0 filas afectadas -> ErrConcurrentConflict.
func (r *ItemRepo) UpdateQuantity(ctx context.Context, id string, expected, newQty int, restockedAt *time.Time) error {
	query := `
		UPDATE inventory_items
		SET quantity = $3, last_restocked_at = COALESCE($4, last_restocked_at), updated_at = now()
		WHERE id = $1 AND quantity = $2`
	cmd, err := r.q.Exec(ctx, query, id, expected, newQty, restockedAt)
	if err != nil {
		return wrapErr("update item quantity", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: la cantidad del artículo %s cambió", domain.ErrConcurrentConflict, id)
	}
	return nil
}

// SetActive activa o desactiva (baja lógica).
func (r *ItemRepo) SetActive(ctx context.Context, id string, active bool) error {
	cmd, err := r.q.Exec(ctx, `UPDATE inventory_items SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return wrapErr("set item active", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List filtra, ordena y pagina; devuelve además el total sin paginar.
func (r *ItemRepo) List(ctx context.Context, f repository.ItemFilter) ([]*entity.InventoryItem, int, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	today := f.Today
	if today.IsZero() {
		today = time.Now()
	}

	if !f.IncludeInactive {
		conds = append(conds, "is_active")
	}
	if f.Category != "" {
		conds = append(conds, "category = "+arg(f.Category))
	}
	if f.SupplierID != "" {
		conds = append(conds, "supplier_id::text = "+arg(f.SupplierID))
	}
	if f.LowStock {
		conds = append(conds, "quantity <= reorder_threshold")
	}
	if f.Expired {
		conds = append(conds, "expiry_date < "+arg(today.Format("2006-01-02"))+"::date")
	}
	if !f.ExpiringBefore.IsZero() {
		conds = append(conds, "expiry_date <= "+arg(f.ExpiringBefore.Format("2006-01-02"))+"::date")
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		p := arg("%" + s + "%")
		conds = append(conds, "(name ILIKE "+p+" OR sku ILIKE "+p+" OR description ILIKE "+p+")")
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_items`+where, args...).Scan(&total); err != nil {
		return nil, 0, wrapErr("count items", err)
	}

	col, ok := itemSortColumns[f.SortBy]
	if !ok {
		col = "name"
	}
	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}
	query := `SELECT ` + itemColumns + ` FROM inventory_items` + where +
		fmt.Sprintf(" ORDER BY %s %s NULLS LAST, sku ASC", col, dir)
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit) + " OFFSET " + arg(f.Offset)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapErr("list items", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, 0, wrapErr("scan item", err)
		}
		list = append(list, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapErr("list items", err)
	}
	return list, total, nil
}

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var (
		it         entity.InventoryItem
		supplierID *string
	)
	err := row.Scan(
		&it.ID, &it.SKU, &it.Name, &it.Description, &it.Category, &it.Unit,
		&it.Quantity, &it.ReorderThreshold, &it.UnitPrice, &it.ExpiryDate,
		&supplierID, &it.LastRestockedAt, &it.IsActive, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if supplierID != nil {
		it.SupplierID = *supplierID
	}
	return &it, nil
}

// nullable "" -> NULL para claves foráneas opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
