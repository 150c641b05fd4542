package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/pawsitive-care/inventory-api/internal/domain"
	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const supplierColumns = `id, name, contact_person, email, phone, address, is_active, created_at`

// SupplierRepo proveedores sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	_, err := r.q.Exec(ctx, `INSERT INTO suppliers (`+supplierColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.Name, s.ContactPerson, s.Email, s.Phone, s.Address, s.IsActive, s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrapErr("insert supplier", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id).Scan(
		&s.ID, &s.Name, &s.ContactPerson, &s.Email, &s.Phone, &s.Address, &s.IsActive, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, wrapErr("get supplier", err)
	}
	return &s, nil
}

func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE suppliers SET name = $2, contact_person = $3, email = $4, phone = $5, address = $6, is_active = $7
		WHERE id = $1`,
		s.ID, s.Name, s.ContactPerson, s.Email, s.Phone, s.Address, s.IsActive)
	if err != nil {
		return wrapErr("update supplier", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SupplierRepo) List(ctx context.Context, includeInactive bool, limit, offset int) ([]*entity.Supplier, int, error) {
	where := ""
	if !includeInactive {
		where = " WHERE is_active"
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM suppliers`+where).Scan(&total); err != nil {
		return nil, 0, wrapErr("count suppliers", err)
	}
	rows, err := r.q.Query(ctx, `SELECT `+supplierColumns+` FROM suppliers`+where+
		` ORDER BY lower(name) LIMIT $1 OFFSET $2`, limitArg(limit), offset)
	if err != nil {
		return nil, 0, wrapErr("list suppliers", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.ContactPerson, &s.Email, &s.Phone, &s.Address, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, 0, wrapErr("scan supplier", err)
		}
		list = append(list, &s)
	}
	return list, total, rows.Err()
}
