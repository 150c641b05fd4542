package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pawsitive-care/inventory-api/internal/domain"
)

func TestErrorCode(t *testing.T) {
	cases := map[string]error{
		"INSUFFICIENT_STOCK":  &domain.InsufficientStockError{ItemID: "x", Requested: 5, Available: 2},
		"INVALID_REASON":      fmt.Errorf("%w: \"regalo\"", domain.ErrInvalidReason),
		"VALIDATION":          fmt.Errorf("%w: delta fuera de rango", domain.ErrInvalidInput),
		"NOT_FOUND":           domain.ErrNotFound,
		"DUPLICATE":           domain.ErrDuplicate,
		"CONCURRENT_CONFLICT": fmt.Errorf("op: %w", domain.ErrConcurrentConflict),
		"INTERNAL":            errors.New("conexión rechazada"),
	}
	for want, err := range cases {
		assert.Equal(t, want, domain.ErrorCode(err), err.Error())
	}
}
