package middlewares

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"
)

// RequestContext assigns X-Request-ID and bounds the request context so
// database calls made with c.UserContext() are cancelled with it.
func RequestContext(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = utils.UUID()
		}
		c.Set(fiber.HeaderXRequestID, id)
		c.Locals("reqid", id)

		if timeout <= 0 {
			return c.Next()
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
