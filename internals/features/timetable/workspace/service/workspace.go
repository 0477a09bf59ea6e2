// file: internals/features/timetable/workspace/service/workspace.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	as "planova_backend/internals/features/timetable/analysis/service"
	fs "planova_backend/internals/features/timetable/facet/service"
	gd "planova_backend/internals/features/timetable/generation/dto"
	gen "planova_backend/internals/features/timetable/generation/service"
	gm "planova_backend/internals/features/timetable/grid/model"
	gs "planova_backend/internals/features/timetable/grid/service"
	hm "planova_backend/internals/features/timetable/history/model"
	ss "planova_backend/internals/features/timetable/schedule/service"
	vf "planova_backend/internals/features/timetable/viewfilter/service"
	d "planova_backend/internals/features/timetable/workspace/dto"
)

var (
	ErrGenerationInProgress = errors.New("a timetable is already being generated")
	ErrNoGrid               = errors.New("no timetable has been generated")
	ErrWorkspaceNotFound    = errors.New("workspace not found")
	ErrDiscarded            = errors.New("generation result discarded after clear")
)

// HistorySink persists successful generations. It may be nil.
type HistorySink interface {
	Create(ctx context.Context, h *hm.TimetableHistory) error
}

// Workspace owns the rendered grid, its filter state and the analysis view of
// one browser client. All actions are serialized by mu.
type Workspace struct {
	ID       uuid.UUID
	ClientID uuid.UUID

	mu         sync.Mutex
	numBatches int
	grid       *gm.Grid
	facets     fs.Facets
	filter     *vf.Controller
	analysis   *as.View
	loading    bool
	generating bool
	epoch      uint64
	lastError  string
	historyID  *uuid.UUID
	touched    time.Time

	gen     gen.Generator
	history HistorySink
	now     func() time.Time
}

func newWorkspace(clientID uuid.UUID, g gen.Generator, h HistorySink, now func() time.Time) *Workspace {
	return &Workspace{
		ID:       uuid.New(),
		ClientID: clientID,
		gen:      g,
		history:  h,
		now:      now,
		touched:  now(),
	}
}

/* =======================================================
   Generate
   ======================================================= */

// Generate runs one round-trip to the scheduling service. A second call while
// one is outstanding fails with ErrGenerationInProgress. The previous grid is
// discarded before the request is sent and the loading flag is cleared on
// every exit path.
func (w *Workspace) Generate(ctx context.Context, req gd.GenerateRequest) (*d.Snapshot, error) {
	w.mu.Lock()
	if w.generating {
		w.mu.Unlock()
		return nil, ErrGenerationInProgress
	}
	w.generating = true
	w.loading = true
	w.lastError = ""
	w.discardLocked()
	epoch := w.epoch
	w.touched = w.now()
	w.mu.Unlock()

	res, err := w.gen.Generate(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.generating = false
	w.loading = false
	w.touched = w.now()

	if err != nil {
		w.lastError = err.Error()
		log.Printf("[GENERATE] workspace=%s failed: %v", w.ID, err)
		return w.snapshotLocked(), err
	}
	if epoch != w.epoch {
		log.Printf("[GENERATE] workspace=%s result dropped, grid was cleared meanwhile", w.ID)
		return w.snapshotLocked(), ErrDiscarded
	}

	w.buildLocked(res.Timetable, res.Analysis, req.NumBatches)
	w.historyID = w.record(ctx, req, res)
	return w.snapshotLocked(), nil
}

// buildLocked runs adapter, renderer, facet registry, filter controller (All)
// and the analysis renderer.
func (w *Workspace) buildLocked(raw map[string]json.RawMessage, analysis json.RawMessage, numBatches int) {
	sched := ss.Normalize(raw, numBatches)
	w.numBatches = sched.NumBatches
	w.grid = gs.Render(sched)
	w.facets = fs.Build(sched)
	w.filter = vf.New(w.grid, w.facets)

	summary, err := as.Decode(analysis)
	if err != nil {
		log.Printf("[WARN] workspace=%s analysis dropped: %v", w.ID, err)
		summary = nil
	}
	if summary != nil {
		w.analysis = as.NewView(summary)
	}
}

func (w *Workspace) record(ctx context.Context, req gd.GenerateRequest, res *gen.Result) *uuid.UUID {
	if w.history == nil {
		return nil
	}
	reqJSON, err := sonic.Marshal(req)
	if err != nil {
		log.Printf("[WARN] workspace=%s history skipped: %v", w.ID, err)
		return nil
	}
	ttJSON, err := sonic.Marshal(res.Timetable)
	if err != nil {
		log.Printf("[WARN] workspace=%s history skipped: %v", w.ID, err)
		return nil
	}

	h := &hm.TimetableHistory{
		TimetableHistoryID:         uuid.New(),
		TimetableHistoryClientID:   w.ClientID,
		TimetableHistoryNumBatches: w.numBatches,
		TimetableHistoryRequest:    datatypes.JSON(reqJSON),
		TimetableHistoryTimetable:  datatypes.JSON(ttJSON),
		TimetableHistoryFaculties:  append([]string{}, w.facets.Faculties...),
	}
	if len(res.Analysis) > 0 {
		h.TimetableHistoryAnalysis = datatypes.JSON(res.Analysis)
	}

	// the request may already be finished; history must still land
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := w.history.Create(saveCtx, h); err != nil {
		log.Printf("[WARN] workspace=%s history save failed: %v", w.ID, err)
		return nil
	}
	id := h.TimetableHistoryID
	return &id
}

/* =======================================================
   Other actions
   ======================================================= */

// SelectFacet applies a filter selection. It is a no-op without a grid.
func (w *Workspace) SelectFacet(next vf.FilterState) (*d.Snapshot, bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touched = w.now()

	if w.filter == nil {
		return w.snapshotLocked(), false, nil
	}
	_, changed, err := w.filter.Transition(next)
	if err != nil {
		return w.snapshotLocked(), false, err
	}
	return w.snapshotLocked(), changed, nil
}

// ToggleDetails flips the per-faculty breakdown of the analysis view.
func (w *Workspace) ToggleDetails() (*d.Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touched = w.now()

	if w.analysis == nil {
		return w.snapshotLocked(), ErrNoGrid
	}
	w.analysis.Toggle()
	return w.snapshotLocked(), nil
}

// Clear drops grid, filter state and analysis. A generation still in flight
// will have its result discarded.
func (w *Workspace) Clear() *d.Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touched = w.now()
	w.discardLocked()
	w.lastError = ""
	return w.snapshotLocked()
}

// Load re-renders a stored timetable with a fresh All filter.
func (w *Workspace) Load(h *hm.TimetableHistory) (*d.Snapshot, error) {
	var raw map[string]json.RawMessage
	if err := sonic.Unmarshal(h.TimetableHistoryTimetable, &raw); err != nil || len(raw) == 0 {
		return nil, &gen.GenerationError{Kind: gen.KindStructural, Message: gen.MsgInvalidTimetable, Err: err}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.generating {
		return w.snapshotLocked(), ErrGenerationInProgress
	}
	w.touched = w.now()
	w.discardLocked()
	w.lastError = ""
	w.buildLocked(raw, json.RawMessage(h.TimetableHistoryAnalysis), h.TimetableHistoryNumBatches)
	id := h.TimetableHistoryID
	w.historyID = &id
	return w.snapshotLocked(), nil
}

func (w *Workspace) discardLocked() {
	if w.filter != nil {
		w.filter.Detach()
	}
	w.grid = nil
	w.facets = fs.Facets{}
	w.filter = nil
	w.analysis = nil
	w.historyID = nil
	w.epoch++
}

/* =======================================================
   Reads
   ======================================================= */

func (w *Workspace) Snapshot() *d.Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touched = w.now()
	return w.snapshotLocked()
}

// snapshotLocked copies everything so callers can serialize without the lock.
func (w *Workspace) snapshotLocked() *d.Snapshot {
	s := &d.Snapshot{
		ID:         w.ID,
		Loading:    w.loading,
		HasGrid:    w.grid != nil,
		NumBatches: w.numBatches,
		LastError:  w.lastError,
		Filter:     vf.All(),
		UpdatedAt:  w.touched,
	}
	if w.historyID != nil {
		id := *w.historyID
		s.HistoryID = &id
	}
	if w.grid != nil {
		s.Grid = w.grid.Clone()
		f := fs.Facets{
			Batches:   append([]int{}, w.facets.Batches...),
			Faculties: append([]string{}, w.facets.Faculties...),
		}
		s.Facets = &f
	}
	if w.filter != nil {
		s.Filter = w.filter.State()
		s.ViewOptions = w.filter.Options().Clone()
		for _, b := range w.filter.Buttons() {
			s.Buttons = append(s.Buttons, vf.Button{Label: b.Label, State: b.State, Active: b.Active})
		}
	}
	if w.analysis != nil {
		s.Analysis = &d.AnalysisSnapshot{
			Summary: w.analysis.Summary,
			Details: w.analysis.Details,
			Node:    w.analysis.Node(),
		}
	}
	return s
}

// Grid returns a copy of the current grid, or ErrNoGrid.
func (w *Workspace) Grid() (*gm.Grid, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.grid == nil {
		return nil, ErrNoGrid
	}
	return w.grid.Clone(), nil
}

// AnalysisNode returns the current analysis display tree, or ErrNoGrid.
func (w *Workspace) AnalysisNode() (*gm.Node, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.analysis == nil {
		return nil, ErrNoGrid
	}
	return w.analysis.Node(), nil
}

// expired reports an idle workspace last touched before cutoff.
func (w *Workspace) expired(cutoff time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.generating && w.touched.Before(cutoff)
}
