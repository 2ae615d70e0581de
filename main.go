package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"go.uber.org/zap"

	"github.com/shaunchuang/DtxEx/internals/configs"
	database "github.com/shaunchuang/DtxEx/internals/databases"
	helper "github.com/shaunchuang/DtxEx/internals/helpers"
	middlewares "github.com/shaunchuang/DtxEx/internals/middlewares"
	routes "github.com/shaunchuang/DtxEx/internals/route"
	"github.com/shaunchuang/DtxEx/internals/seeds"
)

func main() {
	configs.LoadEnv()

	cfg, err := configs.Load("config")
	if err != nil {
		log.Fatalf("❌ config: %v", err)
	}

	logger, level, err := configs.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("❌ logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	configs.WatchConfig(logger, level)

	app := fiber.New(fiber.Config{
		// 🚀 fast JSON
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		BodyLimit:             cfg.Server.BodyLimitMB * 1024 * 1024,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           90 * time.Second,
		ErrorHandler:          errorHandler,
	})

	// ⚙️ base middleware + performance
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	middlewares.SetupMiddlewares(app, cfg, logger)

	// 🔌 DB connect + pool + warm-up
	db, err := database.ConnectDB(cfg.Database, logger)
	if err != nil {
		logger.Fatal("❌ database connection failed", zap.Error(err))
	}
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Fatal("❌ migration failed", zap.Error(err))
		}
	}
	database.WarmUpQueries(db, logger)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), time.Minute)
	seeds.RunAllSeeds(seedCtx, db, logger, cfg.Seed)
	cancelSeed()

	// ✅ Routes
	routes.SetupRoutes(app, db, logger, cfg)

	// Start server non-blocking
	go func() {
		logger.Info("✅ Listening", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Environment))
		if err := app.Listen("0.0.0.0:" + cfg.Server.Port); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown + close DB pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("🛑 shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
	if err := database.Close(db); err != nil {
		logger.Warn("close database", zap.Error(err))
	}
}

// errorHandler renders errors that escape handlers (unknown routes, body
// limit, recovered panics) in the API envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	return helper.JsonFromError(c, err)
}
