// file: internals/features/timetable/history/service/repository.go
package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	m "planova_backend/internals/features/timetable/history/model"
)

var ErrNotFound = errors.New("timetable history not found")

// Repository stores generated timetables per client.
type Repository interface {
	Create(ctx context.Context, h *m.TimetableHistory) error
	List(ctx context.Context, clientID uuid.UUID, faculty string, offset, limit int) ([]m.TimetableHistory, int64, error)
	Get(ctx context.Context, clientID, id uuid.UUID) (*m.TimetableHistory, error)
	Delete(ctx context.Context, clientID, id uuid.UUID) error
	Purge(ctx context.Context, before time.Time) (int64, error)
}

type GormRepository struct {
	DB *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{DB: db}
}

func (r *GormRepository) Create(ctx context.Context, h *m.TimetableHistory) error {
	if h.TimetableHistoryID == uuid.Nil {
		h.TimetableHistoryID = uuid.New()
	}
	return r.DB.WithContext(ctx).Create(h).Error
}

func (r *GormRepository) List(ctx context.Context, clientID uuid.UUID, faculty string, offset, limit int) ([]m.TimetableHistory, int64, error) {
	q := r.DB.WithContext(ctx).
		Model(&m.TimetableHistory{}).
		Where("timetable_history_client_id = ?", clientID)
	if faculty != "" {
		q = q.Where("timetable_history_faculties @> ?", pq.StringArray{faculty})
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []m.TimetableHistory
	err := q.
		Select("timetable_history_id, timetable_history_client_id, timetable_history_num_batches, timetable_history_faculties, timetable_history_created_at").
		Order("timetable_history_created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *GormRepository) Get(ctx context.Context, clientID, id uuid.UUID) (*m.TimetableHistory, error) {
	var h m.TimetableHistory
	err := r.DB.WithContext(ctx).
		Where("timetable_history_id = ? AND timetable_history_client_id = ?", id, clientID).
		First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *GormRepository) Delete(ctx context.Context, clientID, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).
		Where("timetable_history_id = ? AND timetable_history_client_id = ?", id, clientID).
		Delete(&m.TimetableHistory{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Purge hard-deletes rows created before the cutoff, soft-deleted or not.
func (r *GormRepository) Purge(ctx context.Context, before time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).
		Unscoped().
		Where("timetable_history_created_at < ?", before).
		Delete(&m.TimetableHistory{})
	return res.RowsAffected, res.Error
}

/* =========================
   PG error mapping
   ========================= */

// MapError turns repository errors into an HTTP status and message.
func MapError(err error) (int, string) {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound, "Timetable not found"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, "Database timeout"
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return http.StatusConflict, "Duplicate timetable"
		case "23502", "23514":
			return http.StatusBadRequest, "Invalid timetable record"
		case "57014":
			return http.StatusGatewayTimeout, "Database timeout"
		default:
			return http.StatusInternalServerError, pgErr.Message
		}
	}
	return http.StatusInternalServerError, err.Error()
}
