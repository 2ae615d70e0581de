package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shaunchuang/DtxEx/internals/configs"
	"github.com/shaunchuang/DtxEx/internals/middlewares"
	routeDetails "github.com/shaunchuang/DtxEx/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, log *zap.Logger, cfg *configs.Config) {
	startTime = time.Now()

	// ===================== API GROUP =====================
	api := app.Group("/api",
		middlewares.GlobalRateLimiter(cfg.Server.RateLimit),
		middlewares.DBMiddleware(db),
	)

	log.Info("Setting up BaseRoutes...")
	BaseRoutes(app, api, cfg)

	// ===================== MOUNT ROUTES =====================
	log.Info("Mounting Survey routes...")
	routeDetails.SurveyRoutes(api, db, log)

	// unmatched paths under /api answer with the envelope
	api.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "route not found: "+c.Method()+" "+c.Path())
	})
}
