package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/pawsitive-care/inventory-api/internal/application/dto"
	"github.com/pawsitive-care/inventory-api/internal/domain"
)

// respondError traduce errores de dominio a status HTTP + dto.ErrorResponse.
// Todo error no reconocido se responde como 500 INTERNAL.
func respondError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		return c.Status(fiber.StatusConflict).JSON(dto.InsufficientStockResponse{
			Code:      "INSUFFICIENT_STOCK",
			Message:   insufficient.Error(),
			ItemID:    insufficient.ItemID,
			Requested: insufficient.Requested,
			Available: insufficient.Available,
		})
	case errors.Is(err, domain.ErrInvalidReason):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_REASON", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrConcurrentConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENT_CONFLICT", Message: domain.ErrConcurrentConflict.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func badParams(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos"})
}

// ErrorHandler manejador global de fiber: errores de routing (404/405) y panics recuperados.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
	}
	return respondError(c, err)
}
