package routes

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	database "planova_backend/internals/databases"
)

func BaseRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Planova timetable service is running")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Disabled"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if db != nil {
			dbStatus = "Connected"
			if err := database.Ping(); err != nil {
				dbStatus = "Database connection error"
				serverStatus = "DEGRADED"
				httpStatus = fiber.StatusServiceUnavailable
			}
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    os.Getenv("RAILWAY_ENVIRONMENT"),
		})
	})
}
