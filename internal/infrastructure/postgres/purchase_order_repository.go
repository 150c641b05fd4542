package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/pawsitive-care/inventory-api/internal/domain"
	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const poColumns = `id, order_number, supplier_id, status, expected_delivery, total_amount, notes, created_by, created_at, updated_at`

// PurchaseOrderRepo órdenes de compra y sus líneas sobre PostgreSQL (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create inserta cabecera y líneas. Llamar dentro de una transacción para que sea atómico.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	_, err := r.q.Exec(ctx, `INSERT INTO purchase_orders (`+poColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		po.ID, po.OrderNumber, po.SupplierID, po.Status, po.ExpectedDelivery, po.TotalAmount,
		po.Notes, nullable(po.CreatedBy), po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: orden %s", domain.ErrDuplicate, po.OrderNumber)
		}
		return wrapErr("insert purchase order", err)
	}
	for _, l := range po.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO purchase_order_items (id, purchase_order_id, item_id, quantity_ordered, quantity_received, unit_price, total_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			l.ID, po.ID, l.ItemID, l.QuantityOrdered, l.QuantityReceived, l.UnitPrice, l.TotalPrice,
		)
		if err != nil {
			return wrapErr("insert purchase order item", err)
		}
	}
	return nil
}

// GetByID cabecera y líneas.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, `SELECT `+poColumns+` FROM purchase_orders WHERE id = $1`, id)
}

// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE) y carga las líneas.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, `SELECT `+poColumns+` FROM purchase_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *PurchaseOrderRepo) get(ctx context.Context, query, id string) (*entity.PurchaseOrder, error) {
	po, err := scanPO(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, wrapErr("get purchase order", err)
	}
	if err := r.loadLines(ctx, []*entity.PurchaseOrder{po}); err != nil {
		return nil, err
	}
	return po, nil
}

// List órdenes más recientes primero, con sus líneas.
func (r *PurchaseOrderRepo) List(ctx context.Context, f repository.PurchaseOrderFilter) ([]*entity.PurchaseOrder, int, error) {
	var (
		conds []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.SupplierID != "" {
		args = append(args, f.SupplierID)
		conds = append(conds, fmt.Sprintf("supplier_id::text = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM purchase_orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, wrapErr("count purchase orders", err)
	}
	args = append(args, limitArg(f.Limit), f.Offset)
	query := `SELECT ` + poColumns + ` FROM purchase_orders` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, order_number DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapErr("list purchase orders", err)
	}
	var list []*entity.PurchaseOrder
	for rows.Next() {
		po, err := scanPO(rows)
		if err != nil {
			rows.Close()
			return nil, 0, wrapErr("scan purchase order", err)
		}
		list = append(list, po)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, wrapErr("list purchase orders", err)
	}
	if err := r.loadLines(ctx, list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// UpdateStatus cambia el estado de la orden.
func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE purchase_orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return wrapErr("update purchase order status", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateLineReceived fija la cantidad recibida acumulada de una línea. El CHECK de la tabla impide superar lo pedido.
func (r *PurchaseOrderRepo) UpdateLineReceived(ctx context.Context, lineID string, received int) error {
	cmd, err := r.q.Exec(ctx, `UPDATE purchase_order_items SET quantity_received = $2 WHERE id = $1`, lineID, received)
	if err != nil {
		return wrapErr("update purchase order line", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// loadLines carga las líneas de varias órdenes en una sola consulta.
func (r *PurchaseOrderRepo) loadLines(ctx context.Context, orders []*entity.PurchaseOrder) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, 0, len(orders))
	byID := make(map[string]*entity.PurchaseOrder, len(orders))
	for _, po := range orders {
		ids = append(ids, po.ID)
		byID[po.ID] = po
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, purchase_order_id, item_id, quantity_ordered, quantity_received, unit_price, total_price
		FROM purchase_order_items WHERE purchase_order_id = ANY($1) ORDER BY line_no`, ids)
	if err != nil {
		return wrapErr("list purchase order items", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.PurchaseOrderItem
		if err := rows.Scan(&l.ID, &l.PurchaseOrderID, &l.ItemID, &l.QuantityOrdered, &l.QuantityReceived, &l.UnitPrice, &l.TotalPrice); err != nil {
			return wrapErr("scan purchase order item", err)
		}
		if po := byID[l.PurchaseOrderID]; po != nil {
			po.Items = append(po.Items, l)
		}
	}
	return rows.Err()
}

func scanPO(row pgx.Row) (*entity.PurchaseOrder, error) {
	var (
		po        entity.PurchaseOrder
		createdBy *string
	)
	if err := row.Scan(
		&po.ID, &po.OrderNumber, &po.SupplierID, &po.Status, &po.ExpectedDelivery, &po.TotalAmount,
		&po.Notes, &createdBy, &po.CreatedAt, &po.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if createdBy != nil {
		po.CreatedBy = *createdBy
	}
	return &po, nil
}
