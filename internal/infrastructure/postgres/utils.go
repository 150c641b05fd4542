package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pawsitive-care/inventory-api/internal/domain"
)

// Códigos SQLSTATE que se traducen a errores de dominio.
const (
	sqlStateUniqueViolation      = "23505"
	sqlStateInvalidTextRepr      = "22P02"
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateLockNotAvailable     = "55P03"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == sqlStateUniqueViolation
	}
	return strings.Contains(err.Error(), sqlStateUniqueViolation)
}

// isConcurrencyFailure serialización, deadlock o lock no disponible.
func isConcurrencyFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case sqlStateSerializationFailure, sqlStateDeadlockDetected, sqlStateLockNotAvailable:
		return true
	}
	return false
}

// isInvalidTextRepresentation literal inválido para el tipo de la columna (p. ej. un id que no es UUID).
func isInvalidTextRepresentation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == sqlStateInvalidTextRepr
}

// wrapErr envuelve el error del driver con contexto y lo traduce a ErrConcurrentConflict cuando aplica.
// Un id mal formado no puede existir: se traduce a ErrNotFound. No se reintenta: el cliente decide.
func wrapErr(op string, err error) error {
	if isConcurrencyFailure(err) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrConcurrentConflict, err)
	}
	if isInvalidTextRepresentation(err) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrNotFound, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// limitArg limit <= 0 -> NULL (LIMIT NULL equivale a LIMIT ALL).
func limitArg(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}
