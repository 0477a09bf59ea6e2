package service

import (
	"encoding/json"
	"strings"
	"testing"

	am "planova_backend/internals/features/timetable/analysis/model"
	gs "planova_backend/internals/features/timetable/grid/service"
)

const fullAnalysis = `{
	"suggestions": ["Spread Math across the week", "Dr. A has back-to-back labs"],
	"faculty_workload": {
		"average": 4.5, "min": 2, "max": 7,
		"by_faculty": {"Dr. B": 7, "Dr. A": 2},
		"by_day": {"Monday": {"Dr. A": 1}}
	},
	"gap_analysis": {"total_gaps": 3, "by_day": {"Monday": {"batch_1": 2}}}
}`

func render(t *testing.T, raw string, details am.DetailsState) string {
	t.Helper()
	s, err := Decode(json.RawMessage(raw))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	out, err := gs.HTML(Render(s, details))
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	return out
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		nilSummary  bool
		hasWorkload bool
		hasGaps     bool
	}{
		{"absent", ``, true, false, false},
		{"null", `null`, true, false, false},
		{"full", fullAnalysis, false, true, true},
		{"empty workload object", `{"suggestions":[],"faculty_workload":{},"gap_analysis":{"total_gaps":0}}`, false, false, true},
		{"no sections", `{"suggestions":["x"]}`, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Decode(json.RawMessage(tt.raw))
			if err != nil {
				t.Fatal(err)
			}
			if (s == nil) != tt.nilSummary {
				t.Fatalf("summary = %+v", s)
			}
			if s == nil {
				return
			}
			if (s.FacultyWorkload != nil) != tt.hasWorkload {
				t.Errorf("workload = %+v", s.FacultyWorkload)
			}
			if (s.GapAnalysis != nil) != tt.hasGaps {
				t.Errorf("gaps = %+v", s.GapAnalysis)
			}
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	if _, err := Decode(json.RawMessage(`{"faculty_workload": "lots"}`)); err == nil {
		t.Errorf("expected decode error")
	}
}

func TestRender_Full(t *testing.T) {
	out := render(t, fullAnalysis, am.DetailsCollapsed)

	for _, want := range []string{
		"Timetable Analysis",
		"<li>Spread Math across the week</li>",
		"Average: 4.5 classes per faculty",
		"Range: 2 to 7 classes",
		ShowDetails,
		"Total gaps detected: 3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if !strings.Contains(out, `class="faculty-details" style="display: none"`) {
		t.Errorf("details should start hidden\n%s", out)
	}
	// by_faculty rows are sorted by name
	table := out[strings.Index(out, "faculty-workload-table"):]
	if strings.Index(table, "Dr. A") > strings.Index(table, "Dr. B") {
		t.Errorf("faculty rows not sorted\n%s", out)
	}
}

func TestRender_Expanded(t *testing.T) {
	out := render(t, fullAnalysis, am.DetailsExpanded)
	if !strings.Contains(out, HideDetails) {
		t.Errorf("missing %q", HideDetails)
	}
	if strings.Contains(out, "display: none") {
		t.Errorf("expanded details must be visible\n%s", out)
	}
}

func TestRender_Placeholders(t *testing.T) {
	out := render(t, `{"suggestions":[],"gap_analysis":{"total_gaps":0}}`, am.DetailsCollapsed)
	if !strings.Contains(out, NoSuggestions) {
		t.Errorf("missing placeholder\n%s", out)
	}
	if strings.Contains(out, "Scheduling Gaps") {
		t.Errorf("zero gaps must hide the gap section\n%s", out)
	}
	if strings.Contains(out, "Faculty Workload") {
		t.Errorf("absent workload must hide the section\n%s", out)
	}
}

func TestRender_WorkloadWithoutBreakdown(t *testing.T) {
	out := render(t, `{"faculty_workload":{"average":1,"min":1,"max":1}}`, am.DetailsCollapsed)
	if !strings.Contains(out, "Average: 1 classes per faculty") {
		t.Errorf("missing stats\n%s", out)
	}
	if strings.Contains(out, "details-toggle") {
		t.Errorf("no breakdown means no toggle\n%s", out)
	}
}

func TestView_Toggle(t *testing.T) {
	s, err := Decode(json.RawMessage(fullAnalysis))
	if err != nil {
		t.Fatal(err)
	}
	v := NewView(s)
	if v.Details != am.DetailsCollapsed {
		t.Fatalf("initial = %s", v.Details)
	}
	if got := v.Toggle(); got != am.DetailsExpanded {
		t.Errorf("first toggle = %s", got)
	}
	if got := v.Toggle(); got != am.DetailsCollapsed {
		t.Errorf("second toggle = %s", got)
	}

	bare := NewView(&am.Summary{Suggestions: []string{"x"}})
	if got := bare.Toggle(); got != am.DetailsCollapsed {
		t.Errorf("toggle without breakdown = %s", got)
	}
}
