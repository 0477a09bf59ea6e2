// file: internals/features/timetable/schedule/model/schedule_model.go
package model

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

/* =======================================================
   Day: fixed, ordered week (Mon..Fri)
   ======================================================= */

type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
)

// Days is the row order of every grid.
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday}

// DefaultSlotLabels are the hourly headers used when the wire data carries no time label.
var DefaultSlotLabels = []string{
	"9:00-10:00", "10:00-11:00", "11:00-12:00",
	"12:00-1:00", "1:00-2:00", "2:00-3:00",
	"3:00-4:00", "4:00-5:00",
}

// MaxBatches bounds the batch count a schedule is rendered with.
const MaxBatches = 50

// FallbackSlotCount is used when no day supplies a valid slot sequence.
const FallbackSlotCount = 8

/* =======================================================
   SlotContent: tagged variant built once by the adapter
   ======================================================= */

type SlotKind string

const (
	SlotBreak  SlotKind = "break"
	SlotTheory SlotKind = "theory"
	SlotLab    SlotKind = "lab_session"
	SlotEmpty  SlotKind = "empty"
)

// EmptyMarker tells why a slot has no content.
type EmptyMarker string

const (
	MarkerFree   EmptyMarker = "Free"
	MarkerNoData EmptyMarker = "No Data"
	MarkerError  EmptyMarker = "Error"
)

const Unassigned = "Unassigned"

// Assignment is one subject/faculty/room triple; each field is nullable on the wire.
type Assignment struct {
	Subject *string `json:"subject,omitempty"`
	Faculty *string `json:"faculty,omitempty"`
	Room    *string `json:"room,omitempty"`
}

// CanonicalFaculty is the one spelling of a faculty name used for tags and
// filter lookups: NFC with surrounding whitespace removed.
func CanonicalFaculty(name string) string {
	return strings.TrimSpace(norm.NFC.String(name))
}

// FacultyName returns the faculty tag, false when the assignment has none.
func (a Assignment) FacultyName() (string, bool) {
	if a.Faculty == nil || *a.Faculty == "" {
		return "", false
	}
	return *a.Faculty, true
}

func (a Assignment) SubjectOr(def string) string {
	if a.Subject == nil || *a.Subject == "" {
		return def
	}
	return *a.Subject
}

func (a Assignment) FacultyOrUnassigned() string {
	if f, ok := a.FacultyName(); ok {
		return f
	}
	return Unassigned
}

func (a Assignment) RoomOrUnassigned() string {
	if a.Room == nil || *a.Room == "" {
		return Unassigned
	}
	return *a.Room
}

// BatchAssignment is a lab assignment for one batch of the cohort.
type BatchAssignment struct {
	Batch int `json:"batch"`
	Assignment
}

type Slot struct {
	Index  int         `json:"index"`
	Label  string      `json:"label"`
	Kind   SlotKind    `json:"kind"`
	Marker EmptyMarker `json:"marker,omitempty"`

	// SlotTheory only.
	Theory *Assignment `json:"theory,omitempty"`
	// SlotLab only, ascending by batch, absent batches omitted.
	Batches []BatchAssignment `json:"batches,omitempty"`
}

func EmptySlot(index int, label string, marker EmptyMarker) Slot {
	return Slot{Index: index, Label: label, Kind: SlotEmpty, Marker: marker}
}

type DaySchedule struct {
	Day   Day    `json:"day"`
	Slots []Slot `json:"slots"`
	// Degraded is set when the day was missing, invalid or failed to decode.
	Degraded bool `json:"degraded,omitempty"`
}

// Schedule is the normalized week: always len(Days) rows of SlotCount slots.
type Schedule struct {
	NumBatches int           `json:"num_batches"`
	SlotCount  int           `json:"slot_count"`
	Labels     []string      `json:"labels"`
	Rows       []DaySchedule `json:"rows"`
}

/* =======================================================
   Wire shapes (one element of a day's array)
   ======================================================= */

const (
	WireBreak    = "break"
	WireTheory   = "theory"
	WireLab      = "lab_session"
	WireBatchLab = "lab"
)

type WirePayload struct {
	Type    string  `json:"type"`
	Subject *string `json:"subject"`
	Faculty *string `json:"faculty"`
	Room    *string `json:"room"`
}

func (p WirePayload) Assignment() Assignment {
	return Assignment{Subject: p.Subject, Faculty: p.Faculty, Room: p.Room}
}
