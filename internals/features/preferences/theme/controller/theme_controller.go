// file: internals/features/preferences/theme/controller/theme_controller.go
package controller

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	d "planova_backend/internals/features/preferences/theme/dto"
	m "planova_backend/internals/features/preferences/theme/model"
	svc "planova_backend/internals/features/preferences/theme/service"
	helper "planova_backend/internals/helpers"
	clientMw "planova_backend/internals/middlewares/client"
)

type ThemeController struct {
	Store    svc.Store
	Validate *validator.Validate
}

func New(store svc.Store, v *validator.Validate) *ThemeController {
	return &ThemeController{Store: store, Validate: v}
}

// GET /api/preferences/theme
func (ctl *ThemeController) Get(c *fiber.Ctx) error {
	clientID, err := clientMw.GetClientID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	t, err := ctl.Store.Get(c.UserContext(), clientID)
	if err != nil {
		log.Printf("[ERROR] theme get client=%s: %v", clientID, err)
		// store errors degrade to the default theme
		return helper.Success(c, "OK", d.ThemeResponse{Theme: m.DefaultTheme})
	}
	return helper.Success(c, "OK", d.ThemeResponse{Theme: t})
}

// PUT /api/preferences/theme
func (ctl *ThemeController) Put(c *fiber.Ctx) error {
	clientID, err := clientMw.GetClientID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req d.UpdateThemeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Theme = strings.ToLower(strings.TrimSpace(req.Theme))
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	t, _ := m.ParseTheme(req.Theme)
	if err := ctl.Store.Set(c.UserContext(), clientID, t); err != nil {
		log.Printf("[ERROR] theme set client=%s: %v", clientID, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to save theme")
	}
	return helper.Success(c, "Theme saved", d.ThemeResponse{Theme: t})
}
