package dto

import m "planova_backend/internals/features/preferences/theme/model"

type UpdateThemeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark"`
}

type ThemeResponse struct {
	Theme m.Theme `json:"theme"`
}
