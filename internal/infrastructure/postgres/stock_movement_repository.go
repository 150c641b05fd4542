package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, item_id, type, delta, quantity_before, quantity_after, reason, note, created_by, created_at`

// StockMovementRepo ledger de movimientos sobre PostgreSQL (usable con pool o tx). Solo INSERT y SELECT.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento del ledger.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ItemID, m.Type, m.Delta, m.QuantityBefore, m.QuantityAfter,
		m.Reason, m.Note, nullable(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		return wrapErr("create stock movement", err)
	}
	return nil
}

// ListByItem historial de un artículo, más reciente primero.
func (r *StockMovementRepo) ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.StockMovement, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_movements WHERE item_id = $1`, itemID).Scan(&total); err != nil {
		return nil, 0, wrapErr("count movements", err)
	}
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE item_id = $1
		ORDER BY created_at DESC, seq DESC LIMIT $2 OFFSET $3`
	list, err := r.query(ctx, "list movements by item", query, itemID, limit, offset)
	return list, total, err
}

// ListChain ledger completo de un artículo en orden causal (seq ascendente) para reconciliar.
func (r *StockMovementRepo) ListChain(ctx context.Context, itemID string) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE item_id = $1 ORDER BY seq ASC`
	return r.query(ctx, "list movement chain", query, itemID)
}

// List movimientos filtrados, más reciente primero.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	where, args := movementWhere(f)
	query := `SELECT ` + movementColumns + ` FROM stock_movements` + where + ` ORDER BY created_at DESC, seq DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	return r.query(ctx, "list movements", query, args...)
}

// CountByType conteo por tipo con los mismos filtros (sin Type ni paginación).
func (r *StockMovementRepo) CountByType(ctx context.Context, f repository.MovementFilter) (map[string]int, error) {
	f.Type = ""
	where, args := movementWhere(f)
	rows, err := r.q.Query(ctx, `SELECT type, COUNT(*) FROM stock_movements`+where+` GROUP BY type`, args...)
	if err != nil {
		return nil, wrapErr("count movements by type", err)
	}
	defer rows.Close()
	counts := map[string]int{
		entity.MovementTypeIN:         0,
		entity.MovementTypeOUT:        0,
		entity.MovementTypeADJUSTMENT: 0,
	}
	for rows.Next() {
		var (
			t string
			n int
		)
		if err := rows.Scan(&t, &n); err != nil {
			return nil, wrapErr("scan movement count", err)
		}
		counts[t] = n
	}
	return counts, rows.Err()
}

func (r *StockMovementRepo) query(ctx context.Context, op, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, wrapErr(op, err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return list, nil
}

func movementWhere(f repository.MovementFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.ItemID != "" {
		add("item_id = $%d", f.ItemID)
	}
	if f.Type != "" {
		add("type = $%d", f.Type)
	}
	if f.From != nil {
		add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("created_at <= $%d", *f.To)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var (
		m         entity.StockMovement
		createdBy *string
	)
	if err := row.Scan(
		&m.ID, &m.ItemID, &m.Type, &m.Delta, &m.QuantityBefore, &m.QuantityAfter,
		&m.Reason, &m.Note, &createdBy, &m.CreatedAt,
	); err != nil {
		return nil, err
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	return &m, nil
}
