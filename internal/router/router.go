package router

import (
	"coa-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// Setup mounts every route. redis may be nil, which disables background imports.
func Setup(app *fiber.App, db *sqlx.DB, redis *redis.Client, cfg *config.Config) {
	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":        "ok",
			"app":           cfg.AppName,
			"async_imports": redis != nil,
		})
	})

	SetupAPIRoutes(app, db, redis, cfg)
}
