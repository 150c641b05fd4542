package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pawsitive-care/inventory-api/internal/application/dto"
	"github.com/pawsitive-care/inventory-api/internal/application/usecase"
	"github.com/pawsitive-care/inventory-api/internal/domain"
	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/internal/domain/repository"
	"github.com/pawsitive-care/inventory-api/pkg/jwt"
)

// Estados de cuenta.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

const minPasswordLength = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, alta por admin y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	cost     int
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, cost: bcrypt.DefaultCost}
}

// WithBcryptCost ajusta el costo del hash (los tests usan bcrypt.MinCost).
func (uc *AuthUseCase) WithBcryptCost(cost int) *AuthUseCase {
	uc.cost = cost
	return uc
}

// RegisterUser autoregistro: siempre rol client. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	return uc.create(ctx, in.Email, in.Password, in.Name, entity.RoleClient)
}

// CreateUser alta por un admin con cualquier rol válido.
func (uc *AuthUseCase) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !entity.ValidRole(in.Role) {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, in.Role)
	}
	return uc.create(ctx, in.Email, in.Password, in.Name, in.Role)
}

func (uc *AuthUseCase) create(ctx context.Context, email, password, name, role string) (*dto.UserResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: la contraseña requiere al menos %d caracteres", domain.ErrInvalidInput, minPasswordLength)
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if strings.TrimSpace(name) == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(name),
		Role:         role,
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return usecase.EntityToUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email inexistente y password incorrecta responden igual (ErrUnauthorized).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != StatusActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *usecase.EntityToUserResponse(user),
	}, nil
}

// SetStatus activa o desactiva una cuenta (admin).
func (uc *AuthUseCase) SetStatus(ctx context.Context, userID, status string) (*dto.UserResponse, error) {
	if status != StatusActive && status != StatusInactive {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Status = status
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return usecase.EntityToUserResponse(user), nil
}
