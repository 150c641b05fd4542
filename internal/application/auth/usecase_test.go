package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pawsitive-care/inventory-api/internal/application/auth"
	"github.com/pawsitive-care/inventory-api/internal/application/dto"
	"github.com/pawsitive-care/inventory-api/internal/domain"
	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/internal/infrastructure/memory"
	"github.com/pawsitive-care/inventory-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth() *auth.AuthUseCase {
	store := memory.NewStore()
	return auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"}).
		WithBcryptCost(bcrypt.MinCost)
}

func TestRegister_SiempreCliente(t *testing.T) {
	uc := newAuth()
	u, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "Ana@Clinica.test", Password: "12345678"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleClient, u.Role)
	assert.Equal(t, "ana@clinica.test", u.Email)
	assert.Equal(t, "ana@clinica.test", u.Name)

	_, err = uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "ana@clinica.test", Password: "87654321"})
	assert.True(t, errors.Is(err, domain.ErrEmailAlreadyExists))
}

func TestRegister_PasswordCorta(t *testing.T) {
	_, err := newAuth().RegisterUser(context.Background(), dto.RegisterRequest{Email: "a@b.test", Password: "corta"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCreateUser_RolValidado(t *testing.T) {
	uc := newAuth()
	u, err := uc.CreateUser(context.Background(), dto.CreateUserRequest{Email: "vet@c.test", Password: "12345678", Name: "Dra. Ruiz", Role: entity.RoleVet})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVet, u.Role)

	_, err = uc.CreateUser(context.Background(), dto.CreateUserRequest{Email: "x@c.test", Password: "12345678", Name: "X", Role: "root"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestLogin_TokenConRol(t *testing.T) {
	uc := newAuth()
	created, err := uc.CreateUser(context.Background(), dto.CreateUserRequest{Email: "staff@c.test", Password: "12345678", Name: "S", Role: entity.RoleStaff})
	require.NoError(t, err)

	res, err := uc.Login(context.Background(), dto.LoginRequest{Email: "STAFF@c.test", Password: "12345678"})
	require.NoError(t, err)
	userID, role, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
	assert.Equal(t, entity.RoleStaff, role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newAuth()
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "a@c.test", Password: "12345678"})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "a@c.test", Password: "otra-clave"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@c.test", Password: "12345678"})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestLogin_CuentaInactiva(t *testing.T) {
	uc := newAuth()
	u, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "a@c.test", Password: "12345678"})
	require.NoError(t, err)
	_, err = uc.SetStatus(context.Background(), u.ID, auth.StatusInactive)
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "a@c.test", Password: "12345678"})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}
