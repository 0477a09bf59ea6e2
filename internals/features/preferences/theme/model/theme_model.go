// file: internals/features/preferences/theme/model/theme_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"

	DefaultTheme = ThemeLight
)

// ParseTheme accepts light|dark in any case.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	}
	return "", false
}

/* =====================
   MODEL
   ===================== */

type ThemePreference struct {
	ThemePreferenceClientID  uuid.UUID `gorm:"type:uuid;primaryKey;column:theme_preference_client_id" json:"theme_preference_client_id"`
	ThemePreferenceTheme     Theme     `gorm:"type:varchar(10);not null;default:'light';column:theme_preference_theme" json:"theme_preference_theme"`
	ThemePreferenceUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:theme_preference_updated_at" json:"theme_preference_updated_at"`
}

func (ThemePreference) TableName() string {
	return "theme_preferences"
}
