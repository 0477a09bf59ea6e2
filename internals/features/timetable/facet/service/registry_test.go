package service

import (
	"reflect"
	"testing"

	sm "planova_backend/internals/features/timetable/schedule/model"
)

func str(s string) *string { return &s }

func theory(faculty *string) sm.Slot {
	return sm.Slot{Kind: sm.SlotTheory, Theory: &sm.Assignment{Subject: str("S"), Faculty: faculty}}
}

func lab(faculties ...*string) sm.Slot {
	s := sm.Slot{Kind: sm.SlotLab}
	for i, f := range faculties {
		s.Batches = append(s.Batches, sm.BatchAssignment{Batch: i + 1, Assignment: sm.Assignment{Faculty: f}})
	}
	return s
}

func schedule(numBatches int, days map[sm.Day][]sm.Slot) sm.Schedule {
	s := sm.Schedule{NumBatches: numBatches}
	for _, d := range sm.Days {
		s.Rows = append(s.Rows, sm.DaySchedule{Day: d, Slots: days[d]})
	}
	return s
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name      string
		sched     sm.Schedule
		batches   []int
		faculties []string
	}{
		{
			name: "first appearance order across days and slots",
			sched: schedule(3, map[sm.Day][]sm.Slot{
				sm.Monday:  {theory(str("Dr. B")), lab(str("Dr. A"), str("Dr. C"))},
				sm.Tuesday: {theory(str("Dr. A")), theory(str("Dr. D"))},
			}),
			batches:   []int{1, 2, 3},
			faculties: []string{"Dr. B", "Dr. A", "Dr. C", "Dr. D"},
		},
		{
			name: "null and empty faculty are not facets",
			sched: schedule(1, map[sm.Day][]sm.Slot{
				sm.Monday: {theory(nil), theory(str("")), lab(nil, str("Dr. X"))},
			}),
			batches:   []int{1},
			faculties: []string{"Dr. X"},
		},
		{
			name: "break and empty slots contribute nothing",
			sched: schedule(2, map[sm.Day][]sm.Slot{
				sm.Friday: {{Kind: sm.SlotBreak}, sm.EmptySlot(1, "", sm.MarkerFree)},
			}),
			batches:   []int{1, 2},
			faculties: []string{},
		},
		{
			name:      "zero batches",
			sched:     schedule(0, nil),
			batches:   []int{},
			faculties: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(tt.sched)
			if !reflect.DeepEqual(got.Batches, tt.batches) {
				t.Errorf("batches = %v, want %v", got.Batches, tt.batches)
			}
			if !reflect.DeepEqual(got.Faculties, tt.faculties) {
				t.Errorf("faculties = %v, want %v", got.Faculties, tt.faculties)
			}
		})
	}
}

func TestBuild_Deterministic(t *testing.T) {
	s := schedule(2, map[sm.Day][]sm.Slot{
		sm.Wednesday: {lab(str("Z"), str("Y")), theory(str("X"))},
		sm.Monday:    {theory(str("W"))},
	})
	first := Build(s)
	for i := 0; i < 10; i++ {
		if got := Build(s); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d = %+v, want %+v", i, got, first)
		}
	}
	if !reflect.DeepEqual(first.Faculties, []string{"W", "Z", "Y", "X"}) {
		t.Errorf("faculties = %v", first.Faculties)
	}
}

func TestHas(t *testing.T) {
	f := Facets{Batches: []int{1, 2}, Faculties: []string{"A"}}
	if !f.HasBatch(2) || f.HasBatch(3) {
		t.Errorf("HasBatch wrong")
	}
	if !f.HasFaculty("A") || f.HasFaculty("B") {
		t.Errorf("HasFaculty wrong")
	}
}
