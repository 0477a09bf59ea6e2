// file: internals/features/timetable/facet/service/registry.go
package service

import (
	sm "planova_backend/internals/features/timetable/schedule/model"
)

// Facets are the selectable filter values for one rendered timetable.
type Facets struct {
	Batches   []int    `json:"batches"`
	Faculties []string `json:"faculties"`
}

// Build derives facets from a normalized schedule. Batches come from the
// configured count; faculties are listed in first-appearance order walking
// days, then slots, whole-class before per-batch assignments.
func Build(s sm.Schedule) Facets {
	f := Facets{
		Batches:   make([]int, 0, s.NumBatches),
		Faculties: []string{},
	}
	for b := 1; b <= s.NumBatches; b++ {
		f.Batches = append(f.Batches, b)
	}

	seen := map[string]struct{}{}
	add := func(a sm.Assignment) {
		name, ok := a.FacultyName()
		if !ok {
			return
		}
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		f.Faculties = append(f.Faculties, name)
	}

	byDay := make(map[sm.Day]sm.DaySchedule, len(s.Rows))
	for _, r := range s.Rows {
		byDay[r.Day] = r
	}
	for _, day := range sm.Days {
		for _, slot := range byDay[day].Slots {
			switch slot.Kind {
			case sm.SlotTheory:
				if slot.Theory != nil {
					add(*slot.Theory)
				}
			case sm.SlotLab:
				for _, ba := range slot.Batches {
					add(ba.Assignment)
				}
			}
		}
	}
	return f
}

func (f Facets) HasBatch(b int) bool {
	for _, x := range f.Batches {
		if x == b {
			return true
		}
	}
	return false
}

func (f Facets) HasFaculty(name string) bool {
	for _, x := range f.Faculties {
		if x == name {
			return true
		}
	}
	return false
}
