package dto

import (
	"time"

	"github.com/SscSPs/invoice_management_app/internal/core/domain"
)

// UpdateSettingsRequest changes any subset of the user's settings.
type UpdateSettingsRequest struct {
	Theme        *domain.Theme `json:"theme" binding:"omitempty,oneof=LIGHT DARK SYSTEM"`
	Locale       *string       `json:"locale" binding:"omitempty,min=2,max=10"`
	CurrencyCode *string       `json:"currencyCode" binding:"omitempty,len=3"`
}

// SettingsResponse is the API view of user settings.
type SettingsResponse struct {
	Theme        domain.Theme `json:"theme"`
	Locale       string       `json:"locale"`
	CurrencyCode string       `json:"currencyCode"`
	UpdatedAt    *time.Time   `json:"updatedAt,omitempty"`
}

// ToSettingsResponse converts domain settings to the API view.
func ToSettingsResponse(s *domain.UserSettings) SettingsResponse {
	resp := SettingsResponse{
		Theme:        s.Theme,
		Locale:       s.Locale,
		CurrencyCode: s.CurrencyCode,
	}
	if !s.UpdatedAt.IsZero() {
		updated := s.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}
