package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "postgres", cfg.App.Storage)
	assert.Equal(t, 30, cfg.Inventory.ExpiryWindowDays)
	assert.Equal(t, 50, cfg.Pricing.BulkBreakpoint)
	assert.True(t, cfg.Pricing.BulkDiscount.Equal(decimal.RequireFromString("0.10")))
	assert.Equal(t, []string{"log"}, cfg.Notifier.Drivers)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("APP_STORAGE", "memory")
	v.Set("DB_PORT", "6543")
	v.Set("NOTIFIER_DRIVERS", "log, RabbitMQ ,redis")
	v.Set("PRICING_PREFERRED_DISCOUNT", "0.15")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.App.Storage)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, []string{"log", "rabbitmq", "redis"}, cfg.Notifier.Drivers)
	assert.True(t, cfg.Notifier.Enabled("redis"))
	assert.False(t, cfg.Notifier.Enabled("smtp"))
	assert.True(t, cfg.Pricing.PreferredDiscount.Equal(decimal.RequireFromString("0.15")))
}

func TestFromViper_InvalidValues(t *testing.T) {
	v := viper.New()
	v.Set("APP_STORAGE", "mongo")
	_, err := fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("PRICING_BULK_DISCOUNT", "diez")
	_, err = fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "vet", Password: "p@ss:word", DBName: "clinic", SSLMode: "disable"}
	assert.Equal(t, "postgres://vet:p%40ss%3Aword@db:5432/clinic?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}

func TestFromViper_PoolYLockTimeout(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.Equal(t, 5*time.Second, cfg.DB.LockTimeout)

	v := viper.New()
	v.Set("DB_LOCK_TIMEOUT", "750ms")
	cfg, err = fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 750*time.Millisecond, cfg.DB.LockTimeout)

	v = viper.New()
	v.Set("DB_LOCK_TIMEOUT", "pronto")
	_, err = fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("DB_MIN_CONNS", "30")
	_, err = fromViper(v)
	assert.Error(t, err)
}
