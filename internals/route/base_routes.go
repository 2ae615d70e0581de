package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/shaunchuang/DtxEx/internals/configs"
	database "github.com/shaunchuang/DtxEx/internals/databases"
)

func BaseRoutes(app *fiber.App, api fiber.Router, cfg *configs.Config) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Survey API is running 🚀")
	})

	api.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		db, _ := c.Locals("db").(*gorm.DB)
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if db == nil || database.Ping(ctx, db) != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"success": httpStatus == fiber.StatusOK,
			"data": fiber.Map{
				"status":         serverStatus,
				"database":       dbStatus,
				"server_time":    time.Now().Format(time.RFC3339),
				"uptime_seconds": int(time.Since(startTime).Seconds()),
				"environment":    cfg.Server.Environment,
			},
		})
	})
}
