package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/unrolled/secure"
)

// SecureHeaders sets frame, sniffing and XSS headers through unrolled/secure.
func SecureHeaders(isDevelopment bool) fiber.Handler {
	sm := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		IsDevelopment:      isDevelopment,
	})
	return adaptor.HTTPMiddleware(sm.Handler)
}
