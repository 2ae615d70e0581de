package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DBMiddleware puts the connection pool in Locals("db") for handlers that
// are not built around a service.
func DBMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("db", db)
		return c.Next()
	}
}
