package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/invoice_management_app/internal/apperrors"
	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_management_app/internal/models"
	"github.com/SscSPs/invoice_management_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSettingsRepository struct {
	db *pgxpool.Pool
}

func newPgxSettingsRepository(db *pgxpool.Pool) portsrepo.SettingsRepository {
	return &PgxSettingsRepository{db: db}
}

var _ portsrepo.SettingsRepository = (*PgxSettingsRepository)(nil)

func (r *PgxSettingsRepository) FindSettingsByUserID(ctx context.Context, userID string) (*domain.UserSettings, error) {
	query := `
		SELECT user_id, theme, locale, currency_code, updated_at
		FROM user_settings
		WHERE user_id = $1;
	`
	var m models.UserSettings
	err := r.db.QueryRow(ctx, query, userID).Scan(&m.UserID, &m.Theme, &m.Locale, &m.CurrencyCode, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find settings for user %s: %w", userID, err)
	}
	settings := mapping.ToDomainUserSettings(m)
	return &settings, nil
}

func (r *PgxSettingsRepository) UpsertSettings(ctx context.Context, settings domain.UserSettings) error {
	m := mapping.ToModelUserSettings(settings)
	query := `
		INSERT INTO user_settings (user_id, theme, locale, currency_code, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			theme = EXCLUDED.theme,
			locale = EXCLUDED.locale,
			currency_code = EXCLUDED.currency_code,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := r.db.Exec(ctx, query, m.UserID, m.Theme, m.Locale, m.CurrencyCode, m.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save settings for user %s: %w", m.UserID, err)
	}
	return nil
}
