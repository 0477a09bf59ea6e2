package details

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	themeRoute "planova_backend/internals/features/preferences/theme/route"
	themeService "planova_backend/internals/features/preferences/theme/service"
)

func PreferenceRoutes(api fiber.Router, themes themeService.Store, v *validator.Validate) {
	themeRoute.ThemeRoutes(api, themes, v)
}
