package models

import "time"

// UserSettings is a row of the user_settings table.
type UserSettings struct {
	UserID       string    `db:"user_id"`
	Theme        string    `db:"theme"`
	Locale       string    `db:"locale"`
	CurrencyCode string    `db:"currency_code"`
	UpdatedAt    time.Time `db:"updated_at"`
}
