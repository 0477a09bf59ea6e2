// file: internals/features/timetable/workspace/service/export.go
package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	gm "planova_backend/internals/features/timetable/grid/model"
	gs "planova_backend/internals/features/timetable/grid/service"
)

const ExportSheet = "Timetable"

// ExportXLSX writes the grid as it is currently displayed: hidden fragments
// are left out and de-emphasized cells are greyed.
func ExportXLSX(g *gm.Grid) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return nil, err
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"DDE7F3"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, err
	}
	normal, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return nil, err
	}
	dimmed, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Color: "A6A6A6"},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return nil, err
	}

	if err := setCell(f, 1, 1, gs.CornerLabel, header); err != nil {
		return nil, err
	}
	for i, label := range g.Labels {
		if err := setCell(f, i+2, 1, label, header); err != nil {
			return nil, err
		}
	}

	for r, row := range g.Rows {
		if err := setCell(f, 1, r+2, string(row.Day), header); err != nil {
			return nil, err
		}
		for c, cell := range row.Cells {
			style := normal
			if cell.Dimmed {
				style = dimmed
			}
			if err := setCell(f, c+2, r+2, CellText(cell.Node), style); err != nil {
				return nil, err
			}
		}
	}

	last, err := excelize.ColumnNumberToName(len(g.Labels) + 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetColWidth(ExportSheet, "A", "A", 14); err != nil {
		return nil, err
	}
	if len(g.Labels) > 0 {
		if err := f.SetColWidth(ExportSheet, "B", last, 24); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

func setCell(f *excelize.File, col, row int, value string, style int) error {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(ExportSheet, name, value); err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}
	return f.SetCellStyle(ExportSheet, name, name, style)
}

// CellText flattens a cell's visible text, one line per text-bearing node.
func CellText(n *gm.Node) string {
	var lines []string
	var walk func(*gm.Node)
	walk = func(n *gm.Node) {
		if n == nil || n.Hidden() {
			return
		}
		if t := strings.TrimSpace(n.Text); t != "" {
			lines = append(lines, t)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(lines, "\n")
}
