package services

import (
	"context"

	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	"github.com/SscSPs/invoice_management_app/internal/dto"
)

// SettingsSvc manages per-user presentation settings.
type SettingsSvc interface {
	// GetSettings returns the stored settings or the defaults when none were saved.
	GetSettings(ctx context.Context, userID string) (*domain.UserSettings, error)

	// UpdateSettings applies the non-nil fields of req.
	UpdateSettings(ctx context.Context, userID string, req dto.UpdateSettingsRequest) (*domain.UserSettings, error)
}
