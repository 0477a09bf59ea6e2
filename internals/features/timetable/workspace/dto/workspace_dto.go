// file: internals/features/timetable/workspace/dto/workspace_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	am "planova_backend/internals/features/timetable/analysis/model"
	fs "planova_backend/internals/features/timetable/facet/service"
	gm "planova_backend/internals/features/timetable/grid/model"
	vf "planova_backend/internals/features/timetable/viewfilter/service"
)

/* =======================================================
   Requests
   ======================================================= */

type FilterRequest struct {
	View    string `json:"view"    validate:"required,oneof=all batch faculty"`
	Batch   int    `json:"batch"   validate:"omitempty,gte=1"`
	Faculty string `json:"faculty" validate:"omitempty,max=200"`
}

/* =======================================================
   Snapshot: everything the browser paints
   ======================================================= */

type AnalysisSnapshot struct {
	Summary *am.Summary     `json:"summary"`
	Details am.DetailsState `json:"details"`
	Node    *gm.Node        `json:"node"`
}

type Snapshot struct {
	ID         uuid.UUID  `json:"id"`
	Loading    bool       `json:"loading"`
	HasGrid    bool       `json:"has_grid"`
	NumBatches int        `json:"num_batches"`
	LastError  string     `json:"last_error,omitempty"`
	HistoryID  *uuid.UUID `json:"history_id,omitempty"`

	Grid        *gm.Grid       `json:"grid,omitempty"`
	Facets      *fs.Facets     `json:"facets,omitempty"`
	Filter      vf.FilterState `json:"filter"`
	Buttons     []vf.Button    `json:"buttons,omitempty"`
	ViewOptions *gm.Node       `json:"view_options,omitempty"`

	Analysis *AnalysisSnapshot `json:"analysis,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// FilterResponse reports whether a selection changed anything.
type FilterResponse struct {
	Changed  bool      `json:"changed"`
	Snapshot *Snapshot `json:"snapshot"`
}
