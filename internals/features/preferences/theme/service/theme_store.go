// file: internals/features/preferences/theme/service/theme_store.go
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	m "planova_backend/internals/features/preferences/theme/model"
)

// Store persists one theme per client. Get returns the default when nothing
// was saved.
type Store interface {
	Get(ctx context.Context, clientID uuid.UUID) (m.Theme, error)
	Set(ctx context.Context, clientID uuid.UUID, theme m.Theme) error
}

/* =========================
   Postgres (gorm)
   ========================= */

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{DB: db} }

func (s *GormStore) Get(ctx context.Context, clientID uuid.UUID) (m.Theme, error) {
	var p m.ThemePreference
	err := s.DB.WithContext(ctx).
		Where("theme_preference_client_id = ?", clientID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return m.DefaultTheme, nil
	}
	if err != nil {
		return "", err
	}
	if t, ok := m.ParseTheme(string(p.ThemePreferenceTheme)); ok {
		return t, nil
	}
	return m.DefaultTheme, nil
}

func (s *GormStore) Set(ctx context.Context, clientID uuid.UUID, theme m.Theme) error {
	p := m.ThemePreference{
		ThemePreferenceClientID:  clientID,
		ThemePreferenceTheme:     theme,
		ThemePreferenceUpdatedAt: time.Now(),
	}
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "theme_preference_client_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"theme_preference_theme", "theme_preference_updated_at"}),
	}).Create(&p).Error
}

/* =========================
   Redis
   ========================= */

const redisKeyPrefix = "planova-theme:"

type RedisStore struct {
	RDB *redis.Client
	TTL time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{RDB: rdb, TTL: ttl}
}

func (s *RedisStore) Get(ctx context.Context, clientID uuid.UUID) (m.Theme, error) {
	v, err := s.RDB.Get(ctx, redisKeyPrefix+clientID.String()).Result()
	if errors.Is(err, redis.Nil) {
		return m.DefaultTheme, nil
	}
	if err != nil {
		return "", err
	}
	if t, ok := m.ParseTheme(v); ok {
		return t, nil
	}
	return m.DefaultTheme, nil
}

func (s *RedisStore) Set(ctx context.Context, clientID uuid.UUID, theme m.Theme) error {
	return s.RDB.Set(ctx, redisKeyPrefix+clientID.String(), string(theme), s.TTL).Err()
}

/* =========================
   In-memory (no DB, no Redis)
   ========================= */

type MemoryStore struct {
	mu     sync.RWMutex
	themes map[uuid.UUID]m.Theme
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{themes: map[uuid.UUID]m.Theme{}}
}

func (s *MemoryStore) Get(_ context.Context, clientID uuid.UUID) (m.Theme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.themes[clientID]; ok {
		return t, nil
	}
	return m.DefaultTheme, nil
}

func (s *MemoryStore) Set(_ context.Context, clientID uuid.UUID, theme m.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.themes[clientID] = theme
	return nil
}
