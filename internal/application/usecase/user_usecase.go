package usecase

import (
	"context"

	"github.com/pawsitive-care/inventory-api/internal/application/dto"
	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
)

// UserUseCase consultas de usuarios. El alta vive en auth (hash de password).
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return EntityToUserResponse(user), nil
}

// List lista usuarios paginados.
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *EntityToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// EntityToUserResponse mapea sin exponer el hash.
func EntityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
