package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"planova_backend/internals/configs"
	"planova_backend/internals/middlewares/logger"
)

// SetupMiddlewares installs the app-wide chain.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(RequestID(configs.GetEnvDuration("REQUEST_TIMEOUT", 5*time.Second)))
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
