package dto

import (
	"errors"
	"reflect"
	"testing"
)

func validRequest() GenerateRequest {
	return GenerateRequest{
		Subjects: []SubjectInput{
			{Name: " Math ", Hours: 4, Students: 60, Faculty: []string{"Dr. A", " "}},
			{Name: "", Hours: 3, Students: 60, Faculty: []string{"Dr. Z"}},
			{Name: "Bio", Hours: 2, Students: 60, Faculty: []string{"Dr. B", "Dr. A"}},
		},
		Rooms: []RoomInput{
			{Name: "R1", Capacity: 60},
			{Name: "L1", Capacity: 30, Type: " LAB "},
			{Name: "R9", Capacity: 0, Type: "classroom"},
		},
		Labs: []LabInput{
			{Name: "Chem Lab", Hours: 2, Room: "L1", Faculty: []string{"Dr. C", "Dr. B"}},
			{Name: "Ghost Lab", Hours: 2, Room: "", Faculty: []string{"Dr. Q"}},
		},
		Faculties:        []string{"stale"},
		NumBatches:       2,
		StudentsPerBatch: 30,
	}
}

func TestNormalize(t *testing.T) {
	r := validRequest()
	r.Normalize()

	if len(r.Subjects) != 2 || r.Subjects[0].Name != "Math" {
		t.Errorf("subjects = %+v", r.Subjects)
	}
	if !reflect.DeepEqual(r.Subjects[0].Faculty, []string{"Dr. A"}) {
		t.Errorf("blank faculty not dropped: %v", r.Subjects[0].Faculty)
	}
	if len(r.Rooms) != 2 || r.Rooms[0].Type != "classroom" || r.Rooms[1].Type != "lab" {
		t.Errorf("rooms = %+v", r.Rooms)
	}
	if len(r.Labs) != 1 || r.Labs[0].Name != "Chem Lab" {
		t.Errorf("labs = %+v", r.Labs)
	}
	want := []string{"Dr. A", "Dr. B", "Dr. C"}
	if !reflect.DeepEqual(r.Faculties, want) {
		t.Errorf("faculties = %v, want %v", r.Faculties, want)
	}
}

func TestValidate_OK(t *testing.T) {
	r := validRequest()
	r.Normalize()
	if err := r.Validate(NewValidator()); err != nil {
		t.Fatalf("Validate = %v", err)
	}
}

func TestValidate_Preflight(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GenerateRequest)
		message string
		field   string
	}{
		{"no subjects", func(r *GenerateRequest) { r.Subjects = nil }, "Please add at least one subject", "Subjects"},
		{"no rooms", func(r *GenerateRequest) { r.Rooms = nil }, "Please add at least one room", "Rooms"},
		{"zero batches", func(r *GenerateRequest) { r.NumBatches = 0 }, "Number of batches must be at least 1", "NumBatches"},
		{"too many batches", func(r *GenerateRequest) { r.NumBatches = 2000000 }, "Number of batches must be at most 50", "NumBatches"},
		{"zero students", func(r *GenerateRequest) { r.StudentsPerBatch = 0 }, "Students per batch must be at least 1", "StudentsPerBatch"},
		{"odd lab hours", func(r *GenerateRequest) { r.Labs[0].Hours = 3 }, "Please check the highlighted fields", "Labs[0].Hours"},
		{"too many subject hours", func(r *GenerateRequest) { r.Subjects[0].Hours = 16 }, "Please check the highlighted fields", "Subjects[0].Hours"},
	}
	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			r.Normalize()
			tt.mutate(&r)

			err := r.Validate(v)
			var pe *PreflightError
			if !errors.As(err, &pe) {
				t.Fatalf("err = %v, want *PreflightError", err)
			}
			if pe.Messages[0] != tt.message {
				t.Errorf("message = %q, want %q", pe.Messages[0], tt.message)
			}
			if _, ok := pe.Fields[tt.field]; !ok {
				t.Errorf("fields = %v, want key %q", pe.Fields, tt.field)
			}
			if pe.Error() != tt.message {
				t.Errorf("Error() = %q", pe.Error())
			}
		})
	}
}
