package httpserver

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
)

// HeaderRequestID is echoed back on every response.
const HeaderRequestID = "X-Request-ID"

const localRequestID = "requestid"

// RequestID keeps the caller's X-Request-ID or assigns a fresh UUIDv4.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderRequestID)
		if rid == "" {
			id, err := uuid.NewV4()
			if err == nil {
				rid = id.String()
			}
		}
		c.Locals(localRequestID, rid)
		c.Set(HeaderRequestID, rid)
		return c.Next()
	}
}

// RequestIDFrom returns the id assigned by RequestID, or "".
func RequestIDFrom(c *fiber.Ctx) string {
	rid, _ := c.Locals(localRequestID).(string)
	return rid
}

// AccessLog writes one line per request. Errors from the chain are rendered by
// onErr first so the logged status is the one the client sees.
func AccessLog(log *zap.Logger, onErr fiber.ErrorHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := onErr(c, err); herr != nil {
				return herr
			}
		}

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("dur", time.Since(start)),
			zap.String("request_id", RequestIDFrom(c)),
		}
		if status >= fiber.StatusInternalServerError {
			log.Warn("http", fields...)
		} else {
			log.Info("http", fields...)
		}
		return nil
	}
}
