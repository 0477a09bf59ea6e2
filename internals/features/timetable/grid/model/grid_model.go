// file: internals/features/timetable/grid/model/grid_model.go
package model

import (
	sm "planova_backend/internals/features/timetable/schedule/model"
)

/* =======================================================
   Node: structured description of one element
   ======================================================= */

type Node struct {
	Tag      string            `json:"tag"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Text     string            `json:"text,omitempty"`
	Children []*Node           `json:"children,omitempty"`
}

func El(tag string, attrs map[string]string, children ...*Node) *Node {
	return &Node{Tag: tag, Attrs: attrs, Children: children}
}

func TextEl(tag, text string) *Node {
	return &Node{Tag: tag, Text: text}
}

func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

func (n *Node) SetAttr(key, value string) {
	if n.Attrs == nil {
		n.Attrs = map[string]string{}
	}
	n.Attrs[key] = value
}

func (n *Node) DelAttr(key string) {
	delete(n.Attrs, key)
}

// Clone deep-copies the subtree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Tag: n.Tag, Text: n.Text}
	if n.Attrs != nil {
		out.Attrs = make(map[string]string, len(n.Attrs))
		for k, v := range n.Attrs {
			out.Attrs[k] = v
		}
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, c.Clone())
	}
	return out
}

// Hidden reports whether the node is collapsed out of the layout.
func (n *Node) Hidden() bool {
	return n != nil && n.Attrs[AttrStyle] == StyleHidden
}

/* =======================================================
   Grid index: what the filter controller operates on
   ======================================================= */

const (
	AttrFaculty = "data-faculty"
	AttrBatch   = "data-batch"
	AttrStyle   = "style"

	StyleHidden = "display: none"
	StyleDimmed = "opacity: 0.3"
)

// Fragment is one per-batch assignment container inside a lab cell.
type Fragment struct {
	Batch      int    `json:"batch"`
	FacultyTag string `json:"faculty_tag,omitempty"`
	Hidden     bool   `json:"hidden"`
	Node       *Node  `json:"-"`
}

func (f *Fragment) SetHidden(hidden bool) {
	f.Hidden = hidden
	if hidden {
		f.Node.SetAttr(AttrStyle, StyleHidden)
	} else {
		f.Node.DelAttr(AttrStyle)
	}
}

type Cell struct {
	Day        sm.Day      `json:"day"`
	Slot       int         `json:"slot"`
	Kind       sm.SlotKind `json:"kind"`
	FacultyTag string      `json:"faculty_tag,omitempty"`
	Fragments  []*Fragment `json:"fragments,omitempty"`
	Dimmed     bool        `json:"dimmed"`
	Node       *Node       `json:"-"`
}

func (c *Cell) SetDimmed(dimmed bool) {
	c.Dimmed = dimmed
	if dimmed {
		c.Node.SetAttr(AttrStyle, StyleDimmed)
	} else {
		c.Node.DelAttr(AttrStyle)
	}
}

type Row struct {
	Day   sm.Day  `json:"day"`
	Cells []*Cell `json:"cells"`
	// Failed is set when rendering the row failed and it was replaced by "Error" cells.
	Failed bool `json:"failed,omitempty"`
}

// Grid is owned by the renderer for the lifetime of one generated timetable.
type Grid struct {
	NumBatches int      `json:"num_batches"`
	Labels     []string `json:"labels"`
	Rows       []Row    `json:"rows"`
	Table      *Node    `json:"table"`
}

// EachCell visits every data cell in day order, then slot order.
func (g *Grid) EachCell(fn func(*Cell)) {
	for i := range g.Rows {
		for _, c := range g.Rows[i].Cells {
			fn(c)
		}
	}
}

func (g *Grid) Cell(day sm.Day, slot int) *Cell {
	for i := range g.Rows {
		if g.Rows[i].Day != day {
			continue
		}
		if slot < 0 || slot >= len(g.Rows[i].Cells) {
			return nil
		}
		return g.Rows[i].Cells[slot]
	}
	return nil
}

// Clone copies the grid for readers outside the owning workspace. The cell
// index of the copy does not point into the copied table.
func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	out := &Grid{
		NumBatches: g.NumBatches,
		Labels:     append([]string(nil), g.Labels...),
		Rows:       make([]Row, len(g.Rows)),
		Table:      g.Table.Clone(),
	}
	for i, r := range g.Rows {
		nr := Row{Day: r.Day, Failed: r.Failed, Cells: make([]*Cell, len(r.Cells))}
		for j, c := range r.Cells {
			cc := *c
			cc.Node = c.Node.Clone()
			cc.Fragments = make([]*Fragment, len(c.Fragments))
			for k, f := range c.Fragments {
				fc := *f
				fc.Node = f.Node.Clone()
				cc.Fragments[k] = &fc
			}
			nr.Cells[j] = &cc
		}
		out.Rows[i] = nr
	}
	return out
}
