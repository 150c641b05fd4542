package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pawsitive-care/inventory-api/internal/application/dto"
	"github.com/pawsitive-care/inventory-api/internal/domain"
	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
)

// SupplierUseCase CRUD de proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create registra un proveedor activo.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	s := &entity.Supplier{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(in.Name),
		ContactPerson: in.ContactPerson,
		Email:         strings.TrimSpace(in.Email),
		Phone:         in.Phone,
		Address:       in.Address,
		IsActive:      true,
		CreatedAt:     time.Now(),
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// GetByID obtiene un proveedor.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// Update actualización parcial.
func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		s.Name = strings.TrimSpace(*in.Name)
	}
	if in.ContactPerson != nil {
		s.ContactPerson = *in.ContactPerson
	}
	if in.Email != nil {
		s.Email = strings.TrimSpace(*in.Email)
	}
	if in.Phone != nil {
		s.Phone = *in.Phone
	}
	if in.Address != nil {
		s.Address = *in.Address
	}
	if in.IsActive != nil {
		s.IsActive = *in.IsActive
	}
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// Deactivate baja lógica; los artículos conservan la referencia.
func (uc *SupplierUseCase) Deactivate(ctx context.Context, id string) error {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	s.IsActive = false
	return uc.repo.Update(ctx, s)
}

// List lista proveedores por nombre.
func (uc *SupplierUseCase) List(ctx context.Context, includeInactive bool, page dto.PageRequest) (*dto.SupplierListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, includeInactive, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Email:         s.Email,
		Phone:         s.Phone,
		Address:       s.Address,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
	}
}
