package repositories

import (
	"context"

	"github.com/SscSPs/invoice_management_app/internal/core/domain"
)

// SettingsRepository persists per-user presentation settings.
type SettingsRepository interface {
	// FindSettingsByUserID returns apperrors.ErrNotFound when the user never saved settings.
	FindSettingsByUserID(ctx context.Context, userID string) (*domain.UserSettings, error)

	// UpsertSettings creates or replaces the user's settings.
	UpsertSettings(ctx context.Context, settings domain.UserSettings) error
}
