package logger

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request, levelled by status class.
// Errors returned down the chain are rendered by the app ErrorHandler first
// so the logged status is the one the client sees.
func RequestLogger(log *zap.Logger) fiber.Handler {
	log = log.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.OriginalURL()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.IP()),
		}
		if id, ok := c.Locals("reqid").(string); ok {
			fields = append(fields, zap.String("request_id", id))
		}
		if cause, ok := c.Locals("error").(string); ok {
			fields = append(fields, zap.String("error", cause))
		}

		switch {
		case status >= 500:
			log.Error("Server error", fields...)
		case status >= 400:
			log.Warn("Client error", fields...)
		default:
			log.Debug("Request processed", fields...)
		}
		return nil
	}
}
