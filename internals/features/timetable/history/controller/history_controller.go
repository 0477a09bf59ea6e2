// file: internals/features/timetable/history/controller/history_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	d "planova_backend/internals/features/timetable/history/dto"
	svc "planova_backend/internals/features/timetable/history/service"
	wsctl "planova_backend/internals/features/timetable/workspace/controller"
	ws "planova_backend/internals/features/timetable/workspace/service"
	helper "planova_backend/internals/helpers"
	clientMw "planova_backend/internals/middlewares/client"
)

type HistoryController struct {
	Repo  svc.Repository
	Store *ws.Store
}

func New(repo svc.Repository, store *ws.Store) *HistoryController {
	return &HistoryController{Repo: repo, Store: store}
}

func writeRepoError(c *fiber.Ctx, err error) error {
	code, msg := svc.MapError(err)
	return helper.Error(c, code, msg)
}

func (ctl *HistoryController) ids(c *fiber.Ctx) (clientID, id uuid.UUID, err error) {
	if clientID, err = clientMw.GetClientID(c); err != nil {
		return
	}
	id, err = uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		err = fiber.NewError(fiber.StatusBadRequest, "Invalid timetable id")
	}
	return
}

// GET /api/timetables?page=&per_page=&faculty=
func (ctl *HistoryController) List(c *fiber.Ctx) error {
	clientID, err := clientMw.GetClientID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var q d.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid query")
	}

	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctl.Repo.List(c.UserContext(), clientID, strings.TrimSpace(q.Faculty), p.Offset, p.Limit)
	if err != nil {
		return writeRepoError(c, err)
	}
	items := d.ToListItems(rows)
	return helper.JsonList(c, "OK", items, helper.BuildPaginationFromPage(total, p.Page, p.PerPage, len(items)))
}

// GET /api/timetables/:id
func (ctl *HistoryController) Get(c *fiber.Ctx) error {
	clientID, id, err := ctl.ids(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	h, err := ctl.Repo.Get(c.UserContext(), clientID, id)
	if err != nil {
		return writeRepoError(c, err)
	}
	return helper.Success(c, "OK", d.ToResponse(*h))
}

// POST /api/timetables/:id/open?workspace=<id>
func (ctl *HistoryController) Open(c *fiber.Ctx) error {
	clientID, id, err := ctl.ids(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	wsID, err := uuid.Parse(strings.TrimSpace(c.Query("workspace")))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid workspace id")
	}
	w, err := ctl.Store.Get(wsID, clientID)
	if err != nil {
		return wsctl.WriteError(c, err, nil)
	}

	h, err := ctl.Repo.Get(c.UserContext(), clientID, id)
	if err != nil {
		return writeRepoError(c, err)
	}
	snap, err := w.Load(h)
	if err != nil {
		return wsctl.WriteError(c, err, snap)
	}
	return helper.Success(c, "Timetable opened", snap)
}

// DELETE /api/timetables/:id
func (ctl *HistoryController) Delete(c *fiber.Ctx) error {
	clientID, id, err := ctl.ids(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.Repo.Delete(c.UserContext(), clientID, id); err != nil {
		return writeRepoError(c, err)
	}
	return helper.Success(c, "Timetable deleted", fiber.Map{"id": id})
}
