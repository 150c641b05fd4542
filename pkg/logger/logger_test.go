package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("ruidoso"))
}

func TestNew_RespetaNivel(t *testing.T) {
	l := New(Config{Env: "production", Level: "error", Service: "inventario"})
	assert.Equal(t, zerolog.ErrorLevel, l.Zerolog().GetLevel())
	assert.Equal(t, zerolog.Disabled, Nop().Zerolog().GetLevel())
}
