package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/invoice_management_app/internal/apperrors"
	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	"github.com/SscSPs/invoice_management_app/internal/core/services"
	"github.com/SscSPs/invoice_management_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestSettingsService_GetReturnsDefaults(t *testing.T) {
	repo := new(MockSettingsRepository)
	repo.On("FindSettingsByUserID", mock.Anything, "user-1").Return(nil, apperrors.ErrNotFound).Once()
	svc := services.NewSettingsService(repo, "de_DE")

	settings, err := svc.GetSettings(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, domain.ThemeSystem, settings.Theme)
	assert.Equal(t, "de_DE", settings.Locale)
	assert.Equal(t, "USD", settings.CurrencyCode)
}

func TestSettingsService_GetPropagatesRepositoryErrors(t *testing.T) {
	repo := new(MockSettingsRepository)
	repo.On("FindSettingsByUserID", mock.Anything, "user-1").Return(nil, assert.AnError).Once()
	svc := services.NewSettingsService(repo, "en_US")

	_, err := svc.GetSettings(context.Background(), "user-1")

	assert.ErrorIs(t, err, assert.AnError)
}

func TestSettingsService_UpdateAppliesOnlyProvidedFields(t *testing.T) {
	now := time.Date(2026, time.April, 1, 8, 0, 0, 0, time.UTC)
	repo := new(MockSettingsRepository)
	repo.On("FindSettingsByUserID", mock.Anything, "user-1").Return(&domain.UserSettings{
		UserID: "user-1", Theme: domain.ThemeLight, Locale: "en_US", CurrencyCode: "USD",
	}, nil).Once()
	repo.On("UpsertSettings", mock.Anything, domain.UserSettings{
		UserID: "user-1", Theme: domain.ThemeDark, Locale: "en_US", CurrencyCode: "EUR", UpdatedAt: now,
	}).Return(nil).Once()
	svc := services.NewSettingsService(repo, "en_US", services.WithSettingsClock(fixedClock(now)))

	dark := domain.ThemeDark
	updated, err := svc.UpdateSettings(context.Background(), "user-1", dto.UpdateSettingsRequest{
		Theme:        &dark,
		CurrencyCode: strPtr("eur"),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, updated.Theme)
	assert.Equal(t, "EUR", updated.CurrencyCode)
	repo.AssertExpectations(t)
}

func TestSettingsService_UpdateRejectsUnknownLocale(t *testing.T) {
	repo := new(MockSettingsRepository)
	repo.On("FindSettingsByUserID", mock.Anything, "user-1").Return(nil, apperrors.ErrNotFound).Once()
	svc := services.NewSettingsService(repo, "en_US")

	_, err := svc.UpdateSettings(context.Background(), "user-1", dto.UpdateSettingsRequest{Locale: strPtr("klingon")})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	repo.AssertNotCalled(t, "UpsertSettings", mock.Anything, mock.Anything)
}

func TestSettingsService_UpdateAcceptsKnownLocale(t *testing.T) {
	repo := new(MockSettingsRepository)
	repo.On("FindSettingsByUserID", mock.Anything, "user-1").Return(nil, apperrors.ErrNotFound).Once()
	repo.On("UpsertSettings", mock.Anything, mock.MatchedBy(func(s domain.UserSettings) bool {
		return s.Locale == "fr_FR"
	})).Return(nil).Once()
	svc := services.NewSettingsService(repo, "en_US")

	updated, err := svc.UpdateSettings(context.Background(), "user-1", dto.UpdateSettingsRequest{Locale: strPtr("fr_FR")})

	require.NoError(t, err)
	assert.Equal(t, "fr_FR", updated.Locale)
}
