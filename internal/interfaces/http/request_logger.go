package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pawsitive-care/inventory-api/pkg/logger"
)

// RequestLogger registra método, ruta, status, latencia y usuario de cada request.
func RequestLogger(log *logger.Logger) fiber.Handler {
	log = log.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// el ErrorHandler aún no corrió; se fija el status para el log
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()

		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Str("ip", c.IP()).
			Msg("request")
		return nil
	}
}
