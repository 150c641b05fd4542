package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones para el logger.
type Config struct {
	Env     string // development -> consola legible; otro -> JSON
	Level   string // trace, debug, info, warn, error
	Service string // se agrega como campo "service" si no está vacío
}

// Logger wrapper sobre zerolog para inyección y consistencia.
type Logger struct {
	zl zerolog.Logger
}

// New crea un logger estructurado y lo instala como logger global de zerolog.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.TimeOnly}
	}

	ctx := zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp()
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	zl := ctx.Logger()
	log.Logger = zl

	return &Logger{zl: zl}
}

// Nop devuelve un logger que descarta todo (tests).
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func parseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// Named crea un sublogger con el campo "component".
func (l *Logger) Named(component string) *Logger {
	return &Logger{zl: l.zl.With().Str("component", component).Logger()}
}

// Zerolog devuelve el logger interno por si se necesita la API directa.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}
