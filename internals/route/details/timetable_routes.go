package details

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	historyRoute "planova_backend/internals/features/timetable/history/route"
	historyService "planova_backend/internals/features/timetable/history/service"
	workspaceRoute "planova_backend/internals/features/timetable/workspace/route"
	workspaceService "planova_backend/internals/features/timetable/workspace/service"
	helper "planova_backend/internals/helpers"
)

func TimetableRoutes(api fiber.Router, store *workspaceService.Store, history historyService.Repository, v *validator.Validate, generateLimiter fiber.Handler) {
	workspaceRoute.WorkspaceRoutes(api, store, v, generateLimiter)

	if history == nil {
		api.All("/timetables/*", historyDisabled)
		api.All("/timetables", historyDisabled)
		return
	}
	historyRoute.HistoryRoutes(api, history, store)
}

func historyDisabled(c *fiber.Ctx) error {
	return helper.Error(c, fiber.StatusServiceUnavailable, "Timetable history is disabled")
}
