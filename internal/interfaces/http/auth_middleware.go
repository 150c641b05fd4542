package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pawsitive-care/inventory-api/internal/application/dto"
	"github.com/pawsitive-care/inventory-api/internal/domain/entity"
	"github.com/pawsitive-care/inventory-api/pkg/jwt"
)

// Locals keys para UserID y Role en Fiber.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID y Role a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequireCapability autoriza según la tabla rol → capacidades. Usar después de AuthMiddleware.
//
//   - 401 MISSING_ROLE si el token no trae rol.
//   - 403 FORBIDDEN si el rol no tiene la capacidad.
func RequireCapability(capability string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		if !entity.RoleCan(role, capability) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "el rol '" + role + "' no tiene permiso '" + capability + "'",
			})
		}
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles listados.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado para el rol '" + role + "'"})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
