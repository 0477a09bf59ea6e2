// file: internals/features/timetable/grid/service/renderer.go
package service

import (
	"fmt"
	"log"
	"strconv"

	gm "planova_backend/internals/features/timetable/grid/model"
	sm "planova_backend/internals/features/timetable/schedule/model"
)

const (
	CornerLabel   = "Day / Time"
	BreakLabel    = "Lunch Break"
	LabHeading    = "Lab Sessions"
	UnknownTheory = "Unknown"
	UnknownLab    = "Unknown Lab"
)

// Render builds the day×slot grid for a normalized schedule. It is a pure
// transform; filter state is applied afterwards by the view-filter controller.
func Render(s sm.Schedule) *gm.Grid {
	g := &gm.Grid{
		NumBatches: s.NumBatches,
		Labels:     append([]string(nil), s.Labels...),
		Rows:       make([]gm.Row, 0, len(sm.Days)),
	}

	table := gm.El("table", map[string]string{"class": "timetable"})
	table.Append(headerRow(s.Labels))

	byDay := make(map[sm.Day]sm.DaySchedule, len(s.Rows))
	for _, r := range s.Rows {
		byDay[r.Day] = r
	}

	for _, day := range sm.Days {
		ds, ok := byDay[day]
		if !ok {
			ds = sm.DaySchedule{Day: day}
		}
		row, node, err := safeRow(day, ds.Slots, len(s.Labels))
		if err != nil {
			log.Printf("[GRID] %s: %v, rendering error row", day, err)
			row, node = errorRow(day, len(s.Labels))
		}
		g.Rows = append(g.Rows, row)
		table.Append(node)
	}

	g.Table = table
	return g
}

func headerRow(labels []string) *gm.Node {
	tr := gm.El("tr", nil, gm.TextEl("th", CornerLabel))
	for _, l := range labels {
		tr.Append(gm.TextEl("th", l))
	}
	return tr
}

func safeRow(day sm.Day, slots []sm.Slot, width int) (row gm.Row, node *gm.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return renderRow(day, slots, width)
}

func renderRow(day sm.Day, slots []sm.Slot, width int) (gm.Row, *gm.Node, error) {
	if len(slots) != width {
		return gm.Row{}, nil, fmt.Errorf("row has %d slots, grid has %d columns", len(slots), width)
	}

	row := gm.Row{Day: day, Cells: make([]*gm.Cell, 0, width)}
	tr := gm.El("tr", nil, gm.TextEl("th", string(day)))

	for i, slot := range slots {
		cell, err := renderCell(day, i, slot)
		if err != nil {
			return gm.Row{}, nil, fmt.Errorf("slot %d: %w", i, err)
		}
		row.Cells = append(row.Cells, cell)
		tr.Append(cell.Node)
	}
	return row, tr, nil
}

func renderCell(day sm.Day, index int, slot sm.Slot) (*gm.Cell, error) {
	cell := &gm.Cell{Day: day, Slot: index, Kind: slot.Kind}

	switch slot.Kind {
	case sm.SlotBreak:
		cell.Node = gm.El("td", map[string]string{"class": "break"}, gm.TextEl("strong", BreakLabel))

	case sm.SlotTheory:
		if slot.Theory == nil {
			return nil, fmt.Errorf("theory slot without assignment")
		}
		a := *slot.Theory
		td := gm.El("td", map[string]string{"class": "theory"}, assignmentNodes(a, UnknownTheory)...)
		if f, ok := a.FacultyName(); ok {
			cell.FacultyTag = f
			td.SetAttr(gm.AttrFaculty, f)
		}
		cell.Node = td

	case sm.SlotLab:
		td := gm.El("td", map[string]string{"class": "lab"}, gm.TextEl("strong", LabHeading))
		for _, ba := range slot.Batches {
			frag := batchFragment(ba)
			cell.Fragments = append(cell.Fragments, frag)
			td.Append(frag.Node)
		}
		cell.Node = td

	case sm.SlotEmpty:
		marker := slot.Marker
		if marker == "" {
			marker = sm.MarkerFree
		}
		cell.Node = &gm.Node{Tag: "td", Attrs: map[string]string{"class": emptyClass(marker)}, Text: string(marker)}

	default:
		return nil, fmt.Errorf("unknown slot kind %q", slot.Kind)
	}
	return cell, nil
}

func batchFragment(ba sm.BatchAssignment) *gm.Fragment {
	label := &gm.Node{Tag: "span", Attrs: map[string]string{"class": "batch-label"}, Text: fmt.Sprintf("Batch %d", ba.Batch)}
	div := gm.El("div", map[string]string{"class": "batch-container"}, label)
	div.SetAttr(gm.AttrBatch, strconv.Itoa(ba.Batch))
	div.Append(assignmentNodes(ba.Assignment, UnknownLab)...)

	frag := &gm.Fragment{Batch: ba.Batch, Node: div}
	if f, ok := ba.FacultyName(); ok {
		frag.FacultyTag = f
		div.SetAttr(gm.AttrFaculty, f)
	}
	return frag
}

func assignmentNodes(a sm.Assignment, unknownSubject string) []*gm.Node {
	return []*gm.Node{
		gm.TextEl("strong", a.SubjectOr(unknownSubject)),
		gm.El("div", map[string]string{"class": "faculty"}, &gm.Node{Tag: "span", Text: "Faculty: " + a.FacultyOrUnassigned()}),
		gm.El("div", map[string]string{"class": "room"}, &gm.Node{Tag: "span", Text: "Room: " + a.RoomOrUnassigned()}),
	}
}

func emptyClass(marker sm.EmptyMarker) string {
	switch marker {
	case sm.MarkerNoData:
		return "no-data"
	case sm.MarkerError:
		return "error"
	default:
		return "free"
	}
}

func errorRow(day sm.Day, width int) (gm.Row, *gm.Node) {
	row := gm.Row{Day: day, Cells: make([]*gm.Cell, 0, width), Failed: true}
	tr := gm.El("tr", nil, gm.TextEl("th", string(day)))
	for i := 0; i < width; i++ {
		c := &gm.Cell{
			Day:  day,
			Slot: i,
			Kind: sm.SlotEmpty,
			Node: &gm.Node{Tag: "td", Attrs: map[string]string{"class": "error"}, Text: string(sm.MarkerError)},
		}
		row.Cells = append(row.Cells, c)
		tr.Append(c.Node)
	}
	return row, tr
}
