package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/pawsitive-care/inventory-api/internal/domain"
	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, password_hash, name, role, status, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. Email repetido -> ErrEmailAlreadyExists.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Role, user.Status,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return wrapErr("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email (sin distinguir mayúsculas).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
}

// Update actualiza nombre, rol y estado.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	cmd, err := r.q.Exec(ctx, `UPDATE users SET name = $2, role = $3, status = $4, updated_at = $5 WHERE id = $1`,
		user.ID, user.Name, user.Role, user.Status, user.UpdatedAt)
	if err != nil {
		return wrapErr("update user", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List usuarios ordenados por email.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, wrapErr("count users", err)
	}
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY email LIMIT $1 OFFSET $2`, limitArg(limit), offset)
	if err != nil {
		return nil, 0, wrapErr("list users", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, wrapErr("scan user", err)
		}
		list = append(list, u)
	}
	return list, total, rows.Err()
}

func (r *UserRepo) findOne(ctx context.Context, query, arg string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, wrapErr("get user", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
