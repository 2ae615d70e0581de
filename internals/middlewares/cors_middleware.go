package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CorsMiddleware allows the configured frontend origins (comma separated).
// An empty list or "*" opens the API to any origin without credentials.
func CorsMiddleware(frontendURL string) fiber.Handler {
	var origins []string
	for _, o := range strings.Split(frontendURL, ",") {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			origins = append(origins, o)
		}
	}

	cfg := cors.Config{
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowOrigins = "*"
		return cors.New(cfg)
	}
	cfg.AllowOrigins = strings.Join(origins, ", ")
	cfg.AllowCredentials = true
	return cors.New(cfg)
}
