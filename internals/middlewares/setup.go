package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/shaunchuang/DtxEx/internals/configs"
	"github.com/shaunchuang/DtxEx/internals/middlewares/logger"
)

// SetupMiddlewares installs the global chain, outermost first.
func SetupMiddlewares(app *fiber.App, cfg *configs.Config, log *zap.Logger) {
	app.Use(RequestContext(cfg.Server.RequestTimeout))
	app.Use(logger.RequestLogger(log))
	app.Use(RecoveryMiddleware(log))
	app.Use(SecureHeaders(cfg.Server.Environment == "development"))
	app.Use(CorsMiddleware(cfg.Server.FrontendURL))
}
