package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawsitive-care/inventory-api/internal/domain"
	"github.com/pawsitive-care/inventory-api/pkg/config"
)

func TestWrapErr_ConcurrenciaEsConflicto(t *testing.T) {
	for _, code := range []string{"40001", "40P01", "55P03"} {
		err := wrapErr("item.update_quantity", fmt.Errorf("exec: %w", &pgconn.PgError{Code: code}))
		assert.True(t, errors.Is(err, domain.ErrConcurrentConflict), "código %s", code)
	}
}

func TestWrapErr_OtrosErroresSeEnvuelven(t *testing.T) {
	base := &pgconn.PgError{Code: "23503"}
	err := wrapErr("movement.create", base)
	assert.False(t, errors.Is(err, domain.ErrConcurrentConflict))
	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), "movement.create")
}

func TestWrapErr_IdMalFormadoEsNoEncontrado(t *testing.T) {
	base := &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}
	err := wrapErr("get item", fmt.Errorf("query: %w", base))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, errors.Is(err, domain.ErrConcurrentConflict))
	assert.Contains(t, err.Error(), "get item")
	assert.Equal(t, "NOT_FOUND", domain.ErrorCode(err))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23514"}))
}

func TestLimitArg(t *testing.T) {
	assert.Nil(t, limitArg(0))
	assert.Nil(t, limitArg(-3))
	assert.Equal(t, 20, limitArg(20))
}

func TestBuildPoolConfig(t *testing.T) {
	pc, err := buildPoolConfig(config.DBConfig{
		Host: "db", Port: 5432, User: "vet", DBName: "clinic", SSLMode: "disable",
		MaxConns: 10, MinConns: 1, LockTimeout: 1500 * time.Millisecond,
	})
	require.NoError(t, err)
	assert.Equal(t, int32(10), pc.MaxConns)
	assert.Equal(t, int32(1), pc.MinConns)
	assert.Equal(t, "1500", pc.ConnConfig.RuntimeParams["lock_timeout"])
	assert.Equal(t, applicationName, pc.ConnConfig.RuntimeParams["application_name"])
	assert.NotNil(t, pc.AfterConnect)
}

func TestLookupIPv4_Literales(t *testing.T) {
	ip, err := lookupIPv4(context.Background(), "10.0.0.7")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.7", ip)

	_, err = lookupIPv4(context.Background(), "::1")
	assert.Error(t, err)
}
