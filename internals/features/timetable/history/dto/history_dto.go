// file: internals/features/timetable/history/dto/history_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	m "planova_backend/internals/features/timetable/history/model"
)

/* =====================
   Responses
   ===================== */

// HistoryListItem leaves out the heavy payloads.
type HistoryListItem struct {
	ID         uuid.UUID `json:"id"`
	NumBatches int       `json:"num_batches"`
	Faculties  []string  `json:"faculties"`
	CreatedAt  time.Time `json:"created_at"`
}

type HistoryResponse struct {
	HistoryListItem
	Request   datatypes.JSON `json:"request"`
	Timetable datatypes.JSON `json:"timetable"`
	Analysis  datatypes.JSON `json:"analysis,omitempty"`
}

func ToListItem(h m.TimetableHistory) HistoryListItem {
	fac := []string(h.TimetableHistoryFaculties)
	if fac == nil {
		fac = []string{}
	}
	return HistoryListItem{
		ID:         h.TimetableHistoryID,
		NumBatches: h.TimetableHistoryNumBatches,
		Faculties:  fac,
		CreatedAt:  h.TimetableHistoryCreatedAt,
	}
}

func ToListItems(rows []m.TimetableHistory) []HistoryListItem {
	out := make([]HistoryListItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToListItem(r))
	}
	return out
}

func ToResponse(h m.TimetableHistory) HistoryResponse {
	return HistoryResponse{
		HistoryListItem: ToListItem(h),
		Request:         h.TimetableHistoryRequest,
		Timetable:       h.TimetableHistoryTimetable,
		Analysis:        h.TimetableHistoryAnalysis,
	}
}

/* =====================
   Query
   ===================== */

type ListQuery struct {
	Faculty string `query:"faculty"`
}
