// file: internals/features/timetable/workspace/controller/workspace_controller.go
package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	gd "planova_backend/internals/features/timetable/generation/dto"
	gen "planova_backend/internals/features/timetable/generation/service"
	gs "planova_backend/internals/features/timetable/grid/service"
	vf "planova_backend/internals/features/timetable/viewfilter/service"
	d "planova_backend/internals/features/timetable/workspace/dto"
	svc "planova_backend/internals/features/timetable/workspace/service"
	helper "planova_backend/internals/helpers"
	clientMw "planova_backend/internals/middlewares/client"
)

/* =========================
   Controller & Constructor
   ========================= */

type WorkspaceController struct {
	Store    *svc.Store
	Validate *validator.Validate
}

func New(store *svc.Store, v *validator.Validate) *WorkspaceController {
	return &WorkspaceController{Store: store, Validate: v}
}

/* =========================
   Helpers
   ========================= */

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	idStr := strings.TrimSpace(c.Params(name))
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", name)
	}
	return uuid.Parse(idStr)
}

// workspace resolves :id for the calling client.
func (ctl *WorkspaceController) workspace(c *fiber.Ctx) (*svc.Workspace, error) {
	clientID, err := clientMw.GetClientID(c)
	if err != nil {
		return nil, err
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid workspace id")
	}
	w, err := ctl.Store.Get(id, clientID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Workspace not found")
	}
	return w, nil
}

// WriteError maps workspace and generation errors onto the envelope. snap may be nil.
func WriteError(c *fiber.Ctx, err error, snap *d.Snapshot) error {
	var genErr *gen.GenerationError
	var pre *gd.PreflightError
	var fe *fiber.Error

	switch {
	case errors.As(err, &fe):
		return helper.Error(c, fe.Code, fe.Message)
	case errors.As(err, &pre):
		return helper.ErrorWithDetails(c, fiber.StatusBadRequest, pre.Error(), fiber.Map{
			"messages": pre.Messages,
			"fields":   pre.Fields,
		})
	case errors.As(err, &genErr):
		return helper.ErrorWithData(c, fiber.StatusBadGateway, genErr.Message, fiber.Map{
			"kind":      genErr.Kind,
			"workspace": snap,
		})
	case errors.Is(err, svc.ErrGenerationInProgress), errors.Is(err, svc.ErrDiscarded):
		return helper.ErrorWithData(c, fiber.StatusConflict, err.Error(), snap)
	case errors.Is(err, svc.ErrNoGrid):
		return helper.Error(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, vf.ErrUnknownFacet), errors.Is(err, vf.ErrInvalidState):
		return helper.ErrorWithData(c, fiber.StatusBadRequest, err.Error(), snap)
	case errors.Is(err, svc.ErrWorkspaceNotFound):
		return helper.Error(c, fiber.StatusNotFound, "Workspace not found")
	}
	log.Printf("[ERROR] workspace: %v", err)
	return helper.Error(c, fiber.StatusInternalServerError, err.Error())
}

/* =========================
   Lifecycle
   ========================= */

// POST /api/workspaces
func (ctl *WorkspaceController) Create(c *fiber.Ctx) error {
	clientID, err := clientMw.GetClientID(c)
	if err != nil {
		return WriteError(c, err, nil)
	}
	w := ctl.Store.Create(clientID)
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Workspace created", w.Snapshot())
}

// GET /api/workspaces/:id
func (ctl *WorkspaceController) Get(c *fiber.Ctx) error {
	w, err := ctl.workspace(c)
	if err != nil {
		return WriteError(c, err, nil)
	}
	return helper.Success(c, "OK", w.Snapshot())
}

// DELETE /api/workspaces/:id
func (ctl *WorkspaceController) Delete(c *fiber.Ctx) error {
	clientID, err := clientMw.GetClientID(c)
	if err != nil {
		return WriteError(c, err, nil)
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid workspace id")
	}
	if err := ctl.Store.Delete(id, clientID); err != nil {
		return WriteError(c, err, nil)
	}
	return helper.Success(c, "Workspace deleted", fiber.Map{"id": id})
}

// DELETE /api/workspaces/:id/grid
func (ctl *WorkspaceController) Clear(c *fiber.Ctx) error {
	w, err := ctl.workspace(c)
	if err != nil {
		return WriteError(c, err, nil)
	}
	return helper.Success(c, "Timetable cleared", w.Clear())
}

/* =========================
   Generate
   ========================= */

// POST /api/workspaces/:id/generate
func (ctl *WorkspaceController) Generate(c *fiber.Ctx) error {
	w, err := ctl.workspace(c)
	if err != nil {
		return WriteError(c, err, nil)
	}

	var req gd.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[Workspace.Generate] BodyParser error: %v", err)
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := req.Validate(ctl.Validate); err != nil {
		return WriteError(c, err, nil)
	}

	// the request timeout does not apply; the scheduler client has its own
	ctx := context.WithoutCancel(c.UserContext())
	started := time.Now()
	snap, err := w.Generate(ctx, req)
	if err != nil {
		return WriteError(c, err, snap)
	}
	log.Printf("[GENERATE] workspace=%s batches=%d faculties=%d dur=%s",
		w.ID, req.NumBatches, len(req.Faculties), time.Since(started))
	return helper.Success(c, "Timetable generated", snap)
}

/* =========================
   Filter & analysis
   ========================= */

// POST /api/workspaces/:id/filter
func (ctl *WorkspaceController) Filter(c *fiber.Ctx) error {
	w, err := ctl.workspace(c)
	if err != nil {
		return WriteError(c, err, nil)
	}

	var req d.FilterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.View = strings.ToLower(strings.TrimSpace(req.View))
	req.Faculty = strings.TrimSpace(req.Faculty)
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	state, err := vf.ParseState(req.View, req.Batch, req.Faculty)
	if err != nil {
		return WriteError(c, err, nil)
	}
	snap, changed, err := w.SelectFacet(state)
	if err != nil {
		return WriteError(c, err, snap)
	}
	return helper.Success(c, "OK", d.FilterResponse{Changed: changed, Snapshot: snap})
}

// POST /api/workspaces/:id/analysis/toggle
func (ctl *WorkspaceController) ToggleAnalysis(c *fiber.Ctx) error {
	w, err := ctl.workspace(c)
	if err != nil {
		return WriteError(c, err, nil)
	}
	snap, err := w.ToggleDetails()
	if err != nil {
		return WriteError(c, err, snap)
	}
	return helper.Success(c, "OK", snap)
}

/* =========================
   Exports
   ========================= */

// GET /api/workspaces/:id/grid.html
func (ctl *WorkspaceController) GridHTML(c *fiber.Ctx) error {
	w, err := ctl.workspace(c)
	if err != nil {
		return WriteError(c, err, nil)
	}
	g, err := w.Grid()
	if err != nil {
		return WriteError(c, err, nil)
	}
	out, err := gs.HTML(g.Table)
	if err != nil {
		return WriteError(c, err, nil)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(out)
}

// GET /api/workspaces/:id/analysis.html
func (ctl *WorkspaceController) AnalysisHTML(c *fiber.Ctx) error {
	w, err := ctl.workspace(c)
	if err != nil {
		return WriteError(c, err, nil)
	}
	n, err := w.AnalysisNode()
	if err != nil {
		return WriteError(c, err, nil)
	}
	out, err := gs.HTML(n)
	if err != nil {
		return WriteError(c, err, nil)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(out)
}

// GET /api/workspaces/:id/export.xlsx
func (ctl *WorkspaceController) ExportXLSX(c *fiber.Ctx) error {
	w, err := ctl.workspace(c)
	if err != nil {
		return WriteError(c, err, nil)
	}
	g, err := w.Grid()
	if err != nil {
		return WriteError(c, err, nil)
	}
	buf, err := svc.ExportXLSX(g)
	if err != nil {
		return WriteError(c, err, nil)
	}

	name := fmt.Sprintf("timetable_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+name)
	return c.Send(buf.Bytes())
}
