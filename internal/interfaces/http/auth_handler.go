package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pawsitive-care/inventory-api/internal/application/auth"
	"github.com/pawsitive-care/inventory-api/internal/application/dto"
	"github.com/pawsitive-care/inventory-api/internal/application/usecase"
)

// AuthHandler maneja registro, login y administración de usuarios.
type AuthHandler struct {
	uc    *auth.AuthUseCase
	users *usecase.UserUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, users *usecase.UserUseCase) *AuthHandler {
	return &AuthHandler{uc: uc, users: users}
}

// Register godoc
// @Summary      Registrar usuario (rol client)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, name"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	user, err := h.uc.RegisterUser(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.users.GetByID(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateUser godoc
// @Summary      Crear usuario con cualquier rol (admin)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "email, password, name, role"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *AuthHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	user, err := h.uc.CreateUser(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// ListUsers godoc
// @Summary      Listar usuarios (admin)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.UserListResponse
// @Router       /api/users [get]
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badParams(c)
	}
	out, err := h.users.List(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetUserStatus godoc
// @Summary      Activar o desactivar una cuenta (admin)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del usuario"
// @Param        body  body  dto.SetUserStatusRequest  true  "active | inactive"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/status [patch]
func (h *AuthHandler) SetUserStatus(c *fiber.Ctx) error {
	var in dto.SetUserStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
