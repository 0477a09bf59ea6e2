package service

import (
	"errors"
	"testing"

	fs "planova_backend/internals/features/timetable/facet/service"
	gm "planova_backend/internals/features/timetable/grid/model"
	gs "planova_backend/internals/features/timetable/grid/service"
	sm "planova_backend/internals/features/timetable/schedule/model"
)

func str(s string) *string { return &s }

func batchOf(b int, faculty string) sm.BatchAssignment {
	return sm.BatchAssignment{Batch: b, Assignment: sm.Assignment{Subject: str("Lab"), Faculty: str(faculty), Room: str("L")}}
}

// fixture: Monday = [theory Dr. A, lab {1: Dr. B, 3: Dr. C}, lab {1: Dr. B, 2: Dr. D}, break, free, lab {}]
// other days are theory Dr. B in every slot.
func fixture(t *testing.T) (*gm.Grid, fs.Facets) {
	t.Helper()
	labels := sm.DefaultSlotLabels[:6]
	s := sm.Schedule{NumBatches: 3, SlotCount: 6, Labels: labels}
	for _, d := range sm.Days {
		row := sm.DaySchedule{Day: d}
		if d == sm.Monday {
			row.Slots = []sm.Slot{
				{Kind: sm.SlotTheory, Theory: &sm.Assignment{Subject: str("Math"), Faculty: str("Dr. A"), Room: str("R1")}},
				{Kind: sm.SlotLab, Batches: []sm.BatchAssignment{batchOf(1, "Dr. B"), batchOf(3, "Dr. C")}},
				{Kind: sm.SlotLab, Batches: []sm.BatchAssignment{batchOf(1, "Dr. B"), batchOf(2, "Dr. D")}},
				{Kind: sm.SlotBreak},
				sm.EmptySlot(4, labels[4], sm.MarkerFree),
				{Kind: sm.SlotLab},
			}
		} else {
			for i := range labels {
				row.Slots = append(row.Slots, sm.Slot{Index: i, Kind: sm.SlotTheory, Theory: &sm.Assignment{Subject: str("Bio"), Faculty: str("Dr. B")}})
			}
		}
		s.Rows = append(s.Rows, row)
	}
	return gs.Render(s), fs.Build(s)
}

type flags struct {
	dimmed bool
	hidden []bool
}

func snapshot(g *gm.Grid) []flags {
	var out []flags
	g.EachCell(func(c *gm.Cell) {
		f := flags{dimmed: c.Dimmed}
		for _, fr := range c.Fragments {
			f.hidden = append(f.hidden, fr.Hidden)
		}
		out = append(out, f)
	})
	return out
}

func sameFlags(a, b []flags) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].dimmed != b[i].dimmed || len(a[i].hidden) != len(b[i].hidden) {
			return false
		}
		for j := range a[i].hidden {
			if a[i].hidden[j] != b[i].hidden[j] {
				return false
			}
		}
	}
	return true
}

func assertAllVisible(t *testing.T, g *gm.Grid) {
	t.Helper()
	g.EachCell(func(c *gm.Cell) {
		if c.Dimmed {
			t.Errorf("%s slot %d still dimmed", c.Day, c.Slot)
		}
		if _, ok := c.Node.Attrs[gm.AttrStyle]; ok {
			t.Errorf("%s slot %d still styled: %v", c.Day, c.Slot, c.Node.Attrs)
		}
		for _, f := range c.Fragments {
			if f.Hidden || f.Node.Hidden() {
				t.Errorf("%s slot %d batch %d still hidden", c.Day, c.Slot, f.Batch)
			}
		}
	})
}

func activeButtons(c *Controller) []*Button {
	var out []*Button
	for _, b := range c.Buttons() {
		if b.Active {
			out = append(out, b)
		}
	}
	return out
}

func TestNew_StartsInAll(t *testing.T) {
	g, f := fixture(t)
	c := New(g, f)

	if c.State() != All() {
		t.Fatalf("state = %v, want all", c.State())
	}
	assertAllVisible(t, g)

	// All + 3 batches + 4 faculties
	if len(c.Buttons()) != 8 {
		t.Errorf("buttons = %d, want 8", len(c.Buttons()))
	}
	act := activeButtons(c)
	if len(act) != 1 || act[0].Label != AllLabel {
		t.Errorf("active = %+v, want only %q", act, AllLabel)
	}
}

func TestByBatch(t *testing.T) {
	g, f := fixture(t)
	c := New(g, f)

	if _, changed, err := c.Transition(ByBatch(3)); err != nil || !changed {
		t.Fatalf("Transition = %v, %v", changed, err)
	}

	// lab {1,3} with b=3: only batch 3 visible, not dimmed
	lab13 := g.Cell(sm.Monday, 1)
	if lab13.Dimmed {
		t.Errorf("lab {1,3} should not be dimmed")
	}
	if !lab13.Fragments[0].Hidden || lab13.Fragments[1].Hidden {
		t.Errorf("lab {1,3} fragments hidden = %v,%v", lab13.Fragments[0].Hidden, lab13.Fragments[1].Hidden)
	}
	if lab13.Fragments[0].Node.Attrs[gm.AttrStyle] != gm.StyleHidden {
		t.Errorf("hidden fragment style = %v", lab13.Fragments[0].Node.Attrs)
	}

	// lab {1,2} with b=3: whole cell dimmed
	lab12 := g.Cell(sm.Monday, 2)
	if !lab12.Dimmed || lab12.Node.Attrs[gm.AttrStyle] != gm.StyleDimmed {
		t.Errorf("lab {1,2} should be dimmed, attrs=%v", lab12.Node.Attrs)
	}

	// lab without fragments is dimmed too
	if !g.Cell(sm.Monday, 5).Dimmed {
		t.Errorf("empty lab should be dimmed")
	}

	// theory, break and free stay at full opacity
	for _, slot := range []int{0, 3, 4} {
		if g.Cell(sm.Monday, slot).Dimmed {
			t.Errorf("slot %d dimmed under batch filter", slot)
		}
	}
	if g.Cell(sm.Tuesday, 0).Dimmed {
		t.Errorf("theory on Tuesday dimmed under batch filter")
	}

	act := activeButtons(c)
	if len(act) != 1 || act[0].State != ByBatch(3) {
		t.Errorf("active = %+v", act)
	}
}

func TestByFaculty(t *testing.T) {
	g, f := fixture(t)
	c := New(g, f)

	if _, _, err := c.Transition(ByFaculty("Dr. A")); err != nil {
		t.Fatal(err)
	}
	if g.Cell(sm.Monday, 0).Dimmed {
		t.Errorf("theory tagged Dr. A must stay at full opacity")
	}
	if !g.Cell(sm.Tuesday, 0).Dimmed {
		t.Errorf("theory tagged Dr. B must be dimmed")
	}
	if !g.Cell(sm.Monday, 3).Dimmed || !g.Cell(sm.Monday, 4).Dimmed {
		t.Errorf("break and free cells must be dimmed under faculty filter")
	}

	if _, _, err := c.Transition(ByFaculty("Dr. B")); err != nil {
		t.Fatal(err)
	}
	lab := g.Cell(sm.Monday, 1)
	if lab.Dimmed {
		t.Errorf("lab with a Dr. B fragment must not be dimmed")
	}
	if lab.Fragments[0].Hidden || !lab.Fragments[1].Hidden {
		t.Errorf("fragments hidden = %v,%v, want false,true", lab.Fragments[0].Hidden, lab.Fragments[1].Hidden)
	}
	if !g.Cell(sm.Monday, 0).Dimmed {
		t.Errorf("Dr. A theory must be dimmed under Dr. B")
	}
}

func TestReturnToAllRestores(t *testing.T) {
	states := []FilterState{ByBatch(1), ByBatch(2), ByBatch(3), ByFaculty("Dr. A"), ByFaculty("Dr. B"), ByFaculty("Dr. C"), ByFaculty("Dr. D")}
	for _, s := range states {
		t.Run(s.String(), func(t *testing.T) {
			g, f := fixture(t)
			c := New(g, f)
			if _, _, err := c.Transition(s); err != nil {
				t.Fatal(err)
			}
			if _, changed, err := c.Transition(All()); err != nil || !changed {
				t.Fatalf("back to all = %v, %v", changed, err)
			}
			assertAllVisible(t, g)
		})
	}
}

func TestSameStateIsNoop(t *testing.T) {
	g, f := fixture(t)
	c := New(g, f)
	if _, _, err := c.Transition(ByFaculty("Dr. C")); err != nil {
		t.Fatal(err)
	}
	before := snapshot(g)

	state, changed, err := c.Transition(ByFaculty("Dr. C"))
	if err != nil || changed {
		t.Fatalf("re-select = %v, %v; want no-op", changed, err)
	}
	if state != ByFaculty("Dr. C") {
		t.Errorf("state = %v", state)
	}
	if !sameFlags(before, snapshot(g)) {
		t.Errorf("visibility changed on re-select")
	}
}

func TestUnknownFacetRejected(t *testing.T) {
	g, f := fixture(t)
	c := New(g, f)
	before := snapshot(g)

	for _, s := range []FilterState{ByBatch(4), ByFaculty("Nobody"), {View: "weird"}} {
		if _, changed, err := c.Transition(s); err == nil || changed {
			t.Errorf("%v: changed=%v err=%v, want rejection", s, changed, err)
		}
	}
	if _, _, err := c.Transition(ByBatch(9)); !errors.Is(err, ErrUnknownFacet) {
		t.Errorf("err = %v, want ErrUnknownFacet", err)
	}
	if c.State() != All() || !sameFlags(before, snapshot(g)) {
		t.Errorf("rejected transition must not change anything")
	}
}

func TestDetachedIsNoop(t *testing.T) {
	g, f := fixture(t)
	c := New(g, f)
	c.Detach()

	if _, changed, err := c.Transition(ByBatch(1)); err != nil || changed {
		t.Errorf("detached transition = %v, %v", changed, err)
	}
	if c.Attached() {
		t.Errorf("controller should be detached")
	}
}

func TestParseState(t *testing.T) {
	tests := []struct {
		view    string
		batch   int
		faculty string
		want    FilterState
		wantErr bool
	}{
		{"all", 0, "", All(), false},
		{"", 0, "", All(), false},
		{"BATCH", 2, "", ByBatch(2), false},
		{"batch", 0, "", FilterState{}, true},
		{"faculty", 0, "Dr. A", ByFaculty("Dr. A"), false},
		{"faculty", 0, "", FilterState{}, true},
		{"faculty", 0, " Dr. A ", ByFaculty("Dr. A"), false},
		{"faculty", 0, "Jos\u0065\u0301", ByFaculty("Jos\u00e9"), false},
		{"faculty", 0, "   ", FilterState{}, true},
		{"room", 0, "", FilterState{}, true},
	}
	for _, tt := range tests {
		got, err := ParseState(tt.view, tt.batch, tt.faculty)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseState(%q,%d,%q) err = %v", tt.view, tt.batch, tt.faculty, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseState(%q,%d,%q) = %v, want %v", tt.view, tt.batch, tt.faculty, got, tt.want)
		}
		if tt.wantErr && !errors.Is(err, ErrInvalidState) {
			t.Errorf("err = %v, want ErrInvalidState", err)
		}
	}
}
