package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/pawsitive-care/inventory-api/internal/domain"
	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria; email único sin distinguir mayúsculas.
type UserRepo struct {
	s *Store
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	defer r.s.guard(false)()
	for _, x := range r.s.data.users {
		if strings.EqualFold(x.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.data.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	defer r.s.guard(false)()
	u, ok := r.s.data.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	defer r.s.guard(false)()
	for _, u := range r.s.data.users {
		if strings.EqualFold(u.Email, email) {
			c := u
			return &c, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	defer r.s.guard(false)()
	if _, ok := r.s.data.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.s.data.users[u.ID] = *u
	return nil
}

func (r *UserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, int, error) {
	defer r.s.guard(false)()
	var out []*entity.User
	for _, u := range r.s.data.users {
		c := u
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return paginate(out, limit, offset), len(out), nil
}
