// file: internals/features/timetable/analysis/service/renderer.go
package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/bytedance/sonic"

	am "planova_backend/internals/features/timetable/analysis/model"
	gm "planova_backend/internals/features/timetable/grid/model"
)

const (
	NoSuggestions = "No suggestions available"
	ShowDetails   = "Show Faculty Details"
	HideDetails   = "Hide Faculty Details"
)

type wireSummary struct {
	Suggestions     []string        `json:"suggestions"`
	FacultyWorkload json.RawMessage `json:"faculty_workload"`
	GapAnalysis     json.RawMessage `json:"gap_analysis"`
}

// Decode reads the analysis object. An empty faculty_workload object ({}),
// which the service sends when nobody has load, decodes as absent.
func Decode(raw json.RawMessage) (*am.Summary, error) {
	if isAbsent(raw) {
		return nil, nil
	}
	var w wireSummary
	if err := sonic.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}

	out := &am.Summary{Suggestions: w.Suggestions}
	if !isAbsent(w.FacultyWorkload) && !isEmptyObject(w.FacultyWorkload) {
		var wl am.Workload
		if err := sonic.Unmarshal(w.FacultyWorkload, &wl); err != nil {
			return nil, fmt.Errorf("decode faculty_workload: %w", err)
		}
		out.FacultyWorkload = &wl
	}
	if !isAbsent(w.GapAnalysis) && !isEmptyObject(w.GapAnalysis) {
		var g am.GapAnalysis
		if err := sonic.Unmarshal(w.GapAnalysis, &g); err != nil {
			return nil, fmt.Errorf("decode gap_analysis: %w", err)
		}
		out.GapAnalysis = &g
	}
	return out, nil
}

func isAbsent(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

func isEmptyObject(raw json.RawMessage) bool {
	var probe map[string]json.RawMessage
	if err := sonic.Unmarshal(raw, &probe); err != nil {
		return false
	}
	return len(probe) == 0
}

// Render turns a summary into a display tree. The gap section is shown only
// when at least one gap was counted.
func Render(s *am.Summary, details am.DetailsState) *gm.Node {
	root := gm.El("div", map[string]string{"class": "analysis-container"},
		gm.El("div", map[string]string{"class": "analysis-header"}, gm.TextEl("h3", "Timetable Analysis")),
	)
	if s == nil {
		return root
	}

	root.Append(suggestions(s.Suggestions))
	if s.FacultyWorkload != nil {
		root.Append(workload(s.FacultyWorkload, details))
	}
	if s.GapAnalysis != nil && s.GapAnalysis.TotalGaps > 0 {
		root.Append(gaps(s.GapAnalysis))
	}
	return root
}

func suggestions(items []string) *gm.Node {
	ul := gm.El("ul", nil)
	if len(items) == 0 {
		ul.Append(&gm.Node{Tag: "li", Attrs: map[string]string{"class": "placeholder"}, Text: NoSuggestions})
	}
	for _, it := range items {
		ul.Append(gm.TextEl("li", it))
	}
	return gm.El("div", map[string]string{"class": "suggestions-container"}, gm.TextEl("h4", "Suggestions:"), ul)
}

func workload(w *am.Workload, details am.DetailsState) *gm.Node {
	box := gm.El("div", map[string]string{"class": "workload-container"}, gm.TextEl("h4", "Faculty Workload:"))
	box.Append(gm.El("div", map[string]string{"class": "workload-stats"},
		gm.TextEl("p", fmt.Sprintf("Average: %s classes per faculty", num(w.Average))),
		gm.TextEl("p", fmt.Sprintf("Range: %s to %s classes", num(w.Min), num(w.Max))),
	))
	if w.ByFaculty == nil {
		return box
	}

	toggleLabel := ShowDetails
	if details == am.DetailsExpanded {
		toggleLabel = HideDetails
	}
	box.Append(&gm.Node{
		Tag:   "button",
		Attrs: map[string]string{"class": "details-toggle", "type": "button", "data-state": string(details)},
		Text:  toggleLabel,
	})

	table := gm.El("table", map[string]string{"class": "faculty-workload-table"},
		gm.El("tr", nil, gm.TextEl("th", "Faculty"), gm.TextEl("th", "Total Classes")),
	)
	names := make([]string, 0, len(w.ByFaculty))
	for name := range w.ByFaculty {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		table.Append(gm.El("tr", nil, gm.TextEl("td", name), gm.TextEl("td", num(w.ByFaculty[name]))))
	}

	panel := gm.El("div", map[string]string{"class": "faculty-details"}, table)
	if details != am.DetailsExpanded {
		panel.SetAttr(gm.AttrStyle, gm.StyleHidden)
	}
	return box.Append(panel)
}

func gaps(g *am.GapAnalysis) *gm.Node {
	return gm.El("div", map[string]string{"class": "gap-container"},
		gm.TextEl("h4", "Scheduling Gaps:"),
		gm.TextEl("p", fmt.Sprintf("Total gaps detected: %d", g.TotalGaps)),
	)
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

/* =======================================================
   View: summary plus its own details toggle
   ======================================================= */

type View struct {
	Summary *am.Summary     `json:"summary"`
	Details am.DetailsState `json:"details"`
}

func NewView(s *am.Summary) *View {
	return &View{Summary: s, Details: am.DetailsCollapsed}
}

// Toggle flips the per-faculty breakdown. It is a no-op when the summary has
// no breakdown to show.
func (v *View) Toggle() am.DetailsState {
	if v == nil || v.Summary == nil || v.Summary.FacultyWorkload == nil || v.Summary.FacultyWorkload.ByFaculty == nil {
		if v == nil {
			return am.DetailsCollapsed
		}
		return v.Details
	}
	v.Details = v.Details.Toggle()
	return v.Details
}

func (v *View) Node() *gm.Node {
	if v == nil {
		return nil
	}
	return Render(v.Summary, v.Details)
}
