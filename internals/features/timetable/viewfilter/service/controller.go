// file: internals/features/timetable/viewfilter/service/controller.go
package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	fs "planova_backend/internals/features/timetable/facet/service"
	gm "planova_backend/internals/features/timetable/grid/model"
	sm "planova_backend/internals/features/timetable/schedule/model"
)

/* =======================================================
   FilterState: All | ByBatch(b) | ByFaculty(name)
   ======================================================= */

type View string

const (
	ViewAll     View = "all"
	ViewBatch   View = "batch"
	ViewFaculty View = "faculty"
)

var (
	ErrInvalidState = errors.New("invalid filter selection")
	ErrUnknownFacet = errors.New("facet not present in this timetable")
)

type FilterState struct {
	View    View   `json:"view"`
	Batch   int    `json:"batch,omitempty"`
	Faculty string `json:"faculty,omitempty"`
}

func All() FilterState                  { return FilterState{View: ViewAll} }
func ByBatch(b int) FilterState         { return FilterState{View: ViewBatch, Batch: b} }
func ByFaculty(name string) FilterState { return FilterState{View: ViewFaculty, Faculty: name} }

// ParseState builds a FilterState from loose request fields.
func ParseState(view string, batch int, faculty string) (FilterState, error) {
	switch View(strings.ToLower(strings.TrimSpace(view))) {
	case ViewAll, "":
		return All(), nil
	case ViewBatch:
		if batch < 1 {
			return FilterState{}, fmt.Errorf("%w: batch must be >= 1", ErrInvalidState)
		}
		return ByBatch(batch), nil
	case ViewFaculty:
		faculty = sm.CanonicalFaculty(faculty)
		if faculty == "" {
			return FilterState{}, fmt.Errorf("%w: faculty is required", ErrInvalidState)
		}
		return ByFaculty(faculty), nil
	}
	return FilterState{}, fmt.Errorf("%w: unknown view %q", ErrInvalidState, view)
}

func (s FilterState) String() string {
	switch s.View {
	case ViewBatch:
		return "batch:" + strconv.Itoa(s.Batch)
	case ViewFaculty:
		return "faculty:" + s.Faculty
	}
	return "all"
}

/* =======================================================
   Selector controls
   ======================================================= */

const AllLabel = "All Classes"

type Button struct {
	Label  string      `json:"label"`
	State  FilterState `json:"state"`
	Active bool        `json:"active"`
	Node   *gm.Node    `json:"-"`
}

func (b *Button) setActive(active bool) {
	b.Active = active
	if active {
		b.Node.SetAttr("class", "view-btn active")
	} else {
		b.Node.SetAttr("class", "view-btn")
	}
}

/* =======================================================
   Controller
   ======================================================= */

// Controller toggles visibility flags on an already rendered grid. It never
// creates or removes grid structure.
type Controller struct {
	grid    *gm.Grid
	facets  fs.Facets
	state   FilterState
	buttons []*Button
	options *gm.Node
}

// New attaches a controller to a freshly rendered grid in the All state.
func New(grid *gm.Grid, facets fs.Facets) *Controller {
	c := &Controller{grid: grid, facets: facets}
	c.buildButtons()
	c.apply(All())
	c.state = All()
	c.markActive()
	return c
}

func (c *Controller) State() FilterState { return c.state }

func (c *Controller) Attached() bool { return c != nil && c.grid != nil }

func (c *Controller) Buttons() []*Button { return c.buttons }

// Options is the view-options node holding every selector button.
func (c *Controller) Options() *gm.Node { return c.options }

// Detach is called when the grid is cleared; later transitions are no-ops.
func (c *Controller) Detach() {
	if c == nil {
		return
	}
	c.grid = nil
	c.state = All()
}

// Transition moves to next and applies it to the grid. Selecting the active
// facet again, or any selection after the grid was cleared, changes nothing.
func (c *Controller) Transition(next FilterState) (FilterState, bool, error) {
	if !c.Attached() {
		if c == nil {
			return All(), false, nil
		}
		return c.state, false, nil
	}
	switch next.View {
	case ViewAll:
	case ViewBatch:
		if !c.facets.HasBatch(next.Batch) {
			return c.state, false, fmt.Errorf("%w: batch %d", ErrUnknownFacet, next.Batch)
		}
	case ViewFaculty:
		if !c.facets.HasFaculty(next.Faculty) {
			return c.state, false, fmt.Errorf("%w: faculty %q", ErrUnknownFacet, next.Faculty)
		}
	default:
		return c.state, false, fmt.Errorf("%w: unknown view %q", ErrInvalidState, next.View)
	}

	if next == c.state {
		return c.state, false, nil
	}

	c.apply(next)
	c.state = next
	c.markActive()
	return c.state, true, nil
}

func (c *Controller) apply(s FilterState) {
	c.grid.EachCell(func(cell *gm.Cell) {
		switch s.View {
		case ViewBatch:
			applyBatch(cell, s.Batch)
		case ViewFaculty:
			applyFaculty(cell, s.Faculty)
		default:
			for _, f := range cell.Fragments {
				f.SetHidden(false)
			}
			cell.SetDimmed(false)
		}
	})
}

// applyBatch: theory is batch-agnostic and stays visible; lab cells keep only
// the fragment for b and are de-emphasized when they have none.
func applyBatch(cell *gm.Cell, b int) {
	if cell.Kind != sm.SlotLab {
		for _, f := range cell.Fragments {
			f.SetHidden(false)
		}
		cell.SetDimmed(false)
		return
	}
	match := false
	for _, f := range cell.Fragments {
		hit := f.Batch == b
		f.SetHidden(!hit)
		match = match || hit
	}
	cell.SetDimmed(!match)
}

func applyFaculty(cell *gm.Cell, name string) {
	match := cell.FacultyTag != "" && cell.FacultyTag == name
	for _, f := range cell.Fragments {
		hit := f.FacultyTag != "" && f.FacultyTag == name
		f.SetHidden(!hit)
		match = match || hit
	}
	cell.SetDimmed(!match)
}

func (c *Controller) buildButtons() {
	c.options = gm.El("div", map[string]string{"id": "view-options"})

	all := &Button{Label: AllLabel, State: All(), Node: button(AllLabel, map[string]string{"data-view": string(ViewAll)})}
	c.buttons = append(c.buttons, all)
	c.options.Append(all.Node)

	batches := gm.El("div", map[string]string{"id": "batch-view-buttons"})
	for _, b := range c.facets.Batches {
		label := fmt.Sprintf("Batch %d", b)
		btn := &Button{Label: label, State: ByBatch(b), Node: button(label, map[string]string{
			"data-view":  string(ViewBatch),
			"data-batch": strconv.Itoa(b),
		})}
		c.buttons = append(c.buttons, btn)
		batches.Append(btn.Node)
	}
	c.options.Append(batches)

	faculties := gm.El("div", map[string]string{"id": "faculty-view-buttons"})
	for _, name := range c.facets.Faculties {
		btn := &Button{Label: name, State: ByFaculty(name), Node: button(name, map[string]string{
			"data-view":    string(ViewFaculty),
			"data-faculty": name,
		})}
		c.buttons = append(c.buttons, btn)
		faculties.Append(btn.Node)
	}
	c.options.Append(faculties)
}

func button(label string, attrs map[string]string) *gm.Node {
	n := &gm.Node{Tag: "button", Attrs: attrs, Text: label}
	n.SetAttr("type", "button")
	n.SetAttr("class", "view-btn")
	return n
}

// markActive keeps exactly one selector marked active.
func (c *Controller) markActive() {
	for _, b := range c.buttons {
		b.setActive(b.State == c.state)
	}
}
