package domain

import "time"

// Theme is the user's display preference.
type Theme string

const (
	ThemeLight  Theme = "LIGHT"
	ThemeDark   Theme = "DARK"
	ThemeSystem Theme = "SYSTEM"
)

// IsValid reports whether t is a known theme.
func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeSystem
}

// UserSettings is the per-user presentation configuration.
// A user with no stored row gets DefaultSettings.
type UserSettings struct {
	UserID       string    `json:"userID"`
	Theme        Theme     `json:"theme"`
	Locale       string    `json:"locale"`
	CurrencyCode string    `json:"currencyCode"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DefaultSettings returns the settings used before a user saves any.
func DefaultSettings(userID, locale string) UserSettings {
	return UserSettings{
		UserID:       userID,
		Theme:        ThemeSystem,
		Locale:       locale,
		CurrencyCode: "USD",
	}
}
