package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidReason      = errors.New("código de motivo inválido")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConcurrentConflict = errors.New("el registro fue modificado por otra operación; reintente con datos actualizados")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

// InsufficientStockError detalla una salida rechazada: cantidad solicitada vs disponible.
// errors.Is(err, ErrInsufficientStock) es true.
type InsufficientStockError struct {
	ItemID    string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: solicitado %d, disponible %d", ErrInsufficientStock, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// ErrorCode código estable de un error de dominio; "INTERNAL" si no se reconoce.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInsufficientStock):
		return "INSUFFICIENT_STOCK"
	case errors.Is(err, ErrInvalidReason):
		return "INVALID_REASON"
	case errors.Is(err, ErrInvalidInput):
		return "VALIDATION"
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUserNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrEmailAlreadyExists):
		return "EMAIL_EXISTS"
	case errors.Is(err, ErrDuplicate):
		return "DUPLICATE"
	case errors.Is(err, ErrConcurrentConflict):
		return "CONCURRENT_CONFLICT"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	default:
		return "INTERNAL"
	}
}
