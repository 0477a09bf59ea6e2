package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	tctl "planova_backend/internals/features/preferences/theme/controller"
	svc "planova_backend/internals/features/preferences/theme/service"
)

func ThemeRoutes(api fiber.Router, store svc.Store, v *validator.Validate) {
	ctl := tctl.New(store, v)

	g := api.Group("/preferences")
	g.Get("/theme", ctl.Get)
	g.Put("/theme", ctl.Put)
}
