// file: internals/features/timetable/history/route/history_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	hctl "planova_backend/internals/features/timetable/history/controller"
	svc "planova_backend/internals/features/timetable/history/service"
	ws "planova_backend/internals/features/timetable/workspace/service"
)

func HistoryRoutes(api fiber.Router, repo svc.Repository, store *ws.Store) {
	ctl := hctl.New(repo, store)

	//   GET    /api/timetables
	//   GET    /api/timetables/:id
	//   POST   /api/timetables/:id/open?workspace=<id>
	//   DELETE /api/timetables/:id
	g := api.Group("/timetables")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Post("/:id/open", ctl.Open)
	g.Delete("/:id", ctl.Delete)
}
