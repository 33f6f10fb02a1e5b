package mapping

import (
	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	"github.com/SscSPs/invoice_management_app/internal/models"
)

// ToModelUserSettings converts domain settings to a table row.
func ToModelUserSettings(d domain.UserSettings) models.UserSettings {
	return models.UserSettings{
		UserID:       d.UserID,
		Theme:        string(d.Theme),
		Locale:       d.Locale,
		CurrencyCode: d.CurrencyCode,
		UpdatedAt:    d.UpdatedAt,
	}
}

// ToDomainUserSettings converts a table row to domain settings.
func ToDomainUserSettings(m models.UserSettings) domain.UserSettings {
	return domain.UserSettings{
		UserID:       m.UserID,
		Theme:        domain.Theme(m.Theme),
		Locale:       m.Locale,
		CurrencyCode: m.CurrencyCode,
		UpdatedAt:    m.UpdatedAt,
	}
}
