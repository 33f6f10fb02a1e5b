package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/invoice_management_app/internal/apperrors"
	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_management_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_management_app/internal/core/reporting"
	"github.com/SscSPs/invoice_management_app/internal/dto"
)

type settingsService struct {
	BaseService
	repo          portsrepo.SettingsRepository
	defaultLocale string
}

// SettingsServiceOption is a functional option for configuring the settings service
type SettingsServiceOption func(*settingsService)

// WithSettingsClock sets the clock used for UpdatedAt.
func WithSettingsClock(clock func() time.Time) SettingsServiceOption {
	return func(s *settingsService) {
		s.Clock = clock
	}
}

// NewSettingsService creates the settings service. defaultLocale is reported
// for users who never stored a locale.
func NewSettingsService(repo portsrepo.SettingsRepository, defaultLocale string, options ...SettingsServiceOption) portssvc.SettingsSvc {
	svc := &settingsService{repo: repo, defaultLocale: defaultLocale}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SettingsSvc = (*settingsService)(nil)

func (s *settingsService) GetSettings(ctx context.Context, userID string) (*domain.UserSettings, error) {
	settings, err := s.repo.FindSettingsByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			defaults := domain.DefaultSettings(userID, s.defaultLocale)
			return &defaults, nil
		}
		s.LogError(ctx, err, "Failed to load settings", slog.String("user_id", userID))
		return nil, err
	}
	return settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, userID string, req dto.UpdateSettingsRequest) (*domain.UserSettings, error) {
	settings, err := s.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Theme != nil {
		if !req.Theme.IsValid() {
			return nil, fmt.Errorf("%w: unknown theme %q", apperrors.ErrValidation, *req.Theme)
		}
		settings.Theme = *req.Theme
	}
	if req.Locale != nil {
		locale, ok := reporting.KnownLocale(strings.TrimSpace(*req.Locale))
		if !ok {
			return nil, fmt.Errorf("%w: unsupported locale %q", apperrors.ErrValidation, *req.Locale)
		}
		settings.Locale = string(locale)
	}
	if req.CurrencyCode != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.CurrencyCode))
		if len(code) != 3 {
			return nil, fmt.Errorf("%w: currency code must have 3 letters", apperrors.ErrValidation)
		}
		settings.CurrencyCode = code
	}
	settings.UpdatedAt = s.Now()

	if err := s.repo.UpsertSettings(ctx, *settings); err != nil {
		s.LogError(ctx, err, "Failed to save settings", slog.String("user_id", userID))
		return nil, err
	}
	s.LogInfo(ctx, "Settings updated", slog.String("user_id", userID), slog.String("theme", string(settings.Theme)))
	return settings, nil
}
