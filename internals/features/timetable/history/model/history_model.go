// file: internals/features/timetable/history/model/history_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =====================
   MODEL
   ===================== */

type TimetableHistory struct {
	// PK
	TimetableHistoryID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:timetable_history_id" json:"timetable_history_id"`

	// Owner (anonymous client id from the signed cookie)
	TimetableHistoryClientID uuid.UUID `gorm:"type:uuid;not null;index;column:timetable_history_client_id" json:"timetable_history_client_id"`

	TimetableHistoryNumBatches int `gorm:"not null;column:timetable_history_num_batches" json:"timetable_history_num_batches"`

	// Raw payloads as exchanged with the scheduling service
	TimetableHistoryRequest   datatypes.JSON `gorm:"type:jsonb;not null;column:timetable_history_request" json:"timetable_history_request"`
	TimetableHistoryTimetable datatypes.JSON `gorm:"type:jsonb;not null;column:timetable_history_timetable" json:"timetable_history_timetable"`
	TimetableHistoryAnalysis  datatypes.JSON `gorm:"type:jsonb;column:timetable_history_analysis" json:"timetable_history_analysis,omitempty"`

	// Faculty facets at generation time (for list filtering)
	TimetableHistoryFaculties pq.StringArray `gorm:"type:text[];column:timetable_history_faculties" json:"timetable_history_faculties"`

	// Audit
	TimetableHistoryCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:timetable_history_created_at" json:"timetable_history_created_at"`
	TimetableHistoryDeletedAt gorm.DeletedAt `gorm:"index;column:timetable_history_deleted_at" json:"-"`
}

func (TimetableHistory) TableName() string {
	return "timetable_histories"
}
