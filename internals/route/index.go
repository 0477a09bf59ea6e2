// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	themeService "planova_backend/internals/features/preferences/theme/service"
	historyService "planova_backend/internals/features/timetable/history/service"
	workspaceService "planova_backend/internals/features/timetable/workspace/service"
	clientMw "planova_backend/internals/middlewares/client"
	routeDetails "planova_backend/internals/route/details"
)

var startTime time.Time

// Deps are built in main. DB and History are nil when the database is disabled.
type Deps struct {
	DB              *gorm.DB
	Store           *workspaceService.Store
	History         historyService.Repository
	Themes          themeService.Store
	Validate        *validator.Validate
	JWTSecret       string
	SecureCookie    bool
	GenerateLimiter fiber.Handler
}

func SetupRoutes(app *fiber.App, deps Deps) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, deps.DB)

	log.Println("[INFO] Setting up API group (client identity)...")
	api := app.Group("/api",
		clientMw.Identity(clientMw.IdentityOpts{
			Secret: deps.JWTSecret,
			Secure: deps.SecureCookie,
		}),
	)

	log.Println("[INFO] Mounting Timetable routes...")
	routeDetails.TimetableRoutes(api, deps.Store, deps.History, deps.Validate, deps.GenerateLimiter)

	log.Println("[INFO] Mounting Preference routes...")
	routeDetails.PreferenceRoutes(api, deps.Themes, deps.Validate)
}
