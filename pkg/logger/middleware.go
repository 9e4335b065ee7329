package logger

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// RequestIDKey clave en c.Locals donde el middleware requestid deja el id.
const RequestIDKey = "requestid"

// Middleware registra cada petición: método, ruta, estado, latencia e id de petición.
// 5xx se registran en error, 4xx en warn y el resto en info.
func (l *Logger) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		var ev *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = l.zl.Error()
		case status >= fiber.StatusBadRequest:
			ev = l.zl.Warn()
		default:
			ev = l.zl.Info()
		}
		if err != nil {
			ev = ev.Err(err)
		}
		if rid, ok := c.Locals(RequestIDKey).(string); ok && rid != "" {
			ev = ev.Str("request_id", rid)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("http request")
		return err
	}
}
