// file: internals/features/timetable/workspace/route/workspace_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	wsctl "planova_backend/internals/features/timetable/workspace/controller"
	svc "planova_backend/internals/features/timetable/workspace/service"
)

// WorkspaceRoutes mounts the workspace actions under api (already carrying
// the client identity middleware). generateLimiter guards the outbound call.
func WorkspaceRoutes(api fiber.Router, store *svc.Store, v *validator.Validate, generateLimiter fiber.Handler) {
	ctl := wsctl.New(store, v)

	//   POST   /api/workspaces
	//   GET    /api/workspaces/:id
	//   DELETE /api/workspaces/:id
	//   DELETE /api/workspaces/:id/grid
	g := api.Group("/workspaces")
	g.Post("/", ctl.Create)
	g.Get("/:id", ctl.Get)
	g.Delete("/:id", ctl.Delete)
	g.Delete("/:id/grid", ctl.Clear)

	if generateLimiter != nil {
		g.Post("/:id/generate", generateLimiter, ctl.Generate)
	} else {
		g.Post("/:id/generate", ctl.Generate)
	}
	g.Post("/:id/filter", ctl.Filter)
	g.Post("/:id/analysis/toggle", ctl.ToggleAnalysis)

	g.Get("/:id/grid.html", ctl.GridHTML)
	g.Get("/:id/analysis.html", ctl.AnalysisHTML)
	g.Get("/:id/export.xlsx", ctl.ExportXLSX)
}
