// file: internals/features/timetable/generation/dto/generate_dto.go
package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

/* =======================================================
   Request DTOs (wire format of the scheduling service)
   ======================================================= */

type SubjectInput struct {
	Name     string   `json:"name"     validate:"required"`
	Hours    int      `json:"hours"    validate:"gte=1,lte=15"`
	Students int      `json:"students" validate:"gte=1"`
	Faculty  []string `json:"faculty"  validate:"min=1,dive,required"`
}

type RoomInput struct {
	Name     string `json:"name"     validate:"required"`
	Capacity int    `json:"capacity" validate:"gte=1"`
	Type     string `json:"type"     validate:"required,oneof=classroom lab"`
}

type LabInput struct {
	Name    string   `json:"name"    validate:"required"`
	Hours   int      `json:"hours"   validate:"gte=2,lte=12,even"`
	Room    string   `json:"room"    validate:"required"`
	Faculty []string `json:"faculty" validate:"min=1,dive,required"`
}

type GenerateRequest struct {
	Subjects         []SubjectInput `json:"subjects"           validate:"min=1,dive"`
	Rooms            []RoomInput    `json:"rooms"              validate:"min=1,dive"`
	Labs             []LabInput     `json:"labs"               validate:"dive"`
	Faculties        []string       `json:"faculties"`
	NumBatches       int            `json:"num_batches"        validate:"gte=1,lte=50"`
	StudentsPerBatch int            `json:"students_per_batch" validate:"gte=1"`
}

/* =======================================================
   Normalize: same filtering the entry form applies
   ======================================================= */

// Normalize trims every text field, drops incomplete subject/room/lab rows and
// recomputes Faculties as the de-duplicated union of subject and lab faculty.
func (r *GenerateRequest) Normalize() {
	subjects := make([]SubjectInput, 0, len(r.Subjects))
	for _, s := range r.Subjects {
		s.Name = strings.TrimSpace(s.Name)
		s.Faculty = cleanNames(s.Faculty)
		if s.Name == "" || s.Hours <= 0 || s.Students <= 0 || len(s.Faculty) == 0 {
			continue
		}
		subjects = append(subjects, s)
	}

	rooms := make([]RoomInput, 0, len(r.Rooms))
	for _, rm := range r.Rooms {
		rm.Name = strings.TrimSpace(rm.Name)
		rm.Type = strings.ToLower(strings.TrimSpace(rm.Type))
		if rm.Type == "" {
			rm.Type = "classroom"
		}
		if rm.Name == "" || rm.Capacity <= 0 {
			continue
		}
		rooms = append(rooms, rm)
	}

	labs := make([]LabInput, 0, len(r.Labs))
	for _, l := range r.Labs {
		l.Name = strings.TrimSpace(l.Name)
		l.Room = strings.TrimSpace(l.Room)
		l.Faculty = cleanNames(l.Faculty)
		if l.Name == "" || l.Hours <= 0 || l.Room == "" || len(l.Faculty) == 0 {
			continue
		}
		labs = append(labs, l)
	}

	seen := map[string]struct{}{}
	faculties := []string{}
	add := func(names []string) {
		for _, n := range names {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			faculties = append(faculties, n)
		}
	}
	for _, s := range subjects {
		add(s.Faculty)
	}
	for _, l := range labs {
		add(l.Faculty)
	}

	r.Subjects, r.Rooms, r.Labs, r.Faculties = subjects, rooms, labs, faculties
}

func cleanNames(in []string) []string {
	out := make([]string, 0, len(in))
	for _, n := range in {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

/* =======================================================
   Pre-flight validation
   ======================================================= */

// PreflightError carries the user-facing messages plus field→tag details.
type PreflightError struct {
	Messages []string
	Fields   map[string]string
}

func (e *PreflightError) Error() string {
	if len(e.Messages) == 0 {
		return "invalid input"
	}
	return e.Messages[0]
}

// fieldMessages is keyed by "<namespace>.<tag>", falling back to the bare namespace.
var fieldMessages = map[string]string{
	"Subjects":         "Please add at least one subject",
	"Rooms":            "Please add at least one room",
	"NumBatches":       "Number of batches must be at least 1",
	"NumBatches.lte":   "Number of batches must be at most 50",
	"StudentsPerBatch": "Students per batch must be at least 1",
}

func fieldMessage(ns, tag string) (string, bool) {
	if msg, ok := fieldMessages[ns+"."+tag]; ok {
		return msg, true
	}
	msg, ok := fieldMessages[ns]
	return msg, ok
}

func RegisterGenerateValidators(v *validator.Validate) {
	_ = v.RegisterValidation("even", func(fl validator.FieldLevel) bool {
		return fl.Field().Int()%2 == 0
	})
}

func NewValidator() *validator.Validate {
	v := validator.New()
	RegisterGenerateValidators(v)
	return v
}

// Validate runs the thin pre-flight check. Call Normalize first.
func (r *GenerateRequest) Validate(v *validator.Validate) error {
	err := v.Struct(r)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	out := &PreflightError{Fields: map[string]string{}}
	for _, fe := range ve {
		ns := strings.TrimPrefix(fe.Namespace(), "GenerateRequest.")
		out.Fields[ns] = fe.Tag()
		if msg, ok := fieldMessage(ns, fe.Tag()); ok {
			out.Messages = append(out.Messages, msg)
		}
	}
	if len(out.Messages) == 0 {
		out.Messages = append(out.Messages, "Please check the highlighted fields")
	}
	return out
}
