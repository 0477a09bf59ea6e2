// file: internals/features/timetable/analysis/model/analysis_model.go
package model

// Summary is the analysis object returned next to the timetable.
type Summary struct {
	Suggestions     []string     `json:"suggestions"`
	FacultyWorkload *Workload    `json:"faculty_workload,omitempty"`
	GapAnalysis     *GapAnalysis `json:"gap_analysis,omitempty"`
}

type Workload struct {
	Average   float64                   `json:"average"`
	Min       float64                   `json:"min"`
	Max       float64                   `json:"max"`
	ByFaculty map[string]float64        `json:"by_faculty,omitempty"`
	ByDay     map[string]map[string]int `json:"by_day,omitempty"`
}

type GapAnalysis struct {
	TotalGaps int                       `json:"total_gaps"`
	ByDay     map[string]map[string]int `json:"by_day,omitempty"`
}

/* =======================================================
   Details toggle: local to the workload section
   ======================================================= */

type DetailsState string

const (
	DetailsCollapsed DetailsState = "collapsed"
	DetailsExpanded  DetailsState = "expanded"
)

func (s DetailsState) Toggle() DetailsState {
	if s == DetailsExpanded {
		return DetailsCollapsed
	}
	return DetailsExpanded
}
