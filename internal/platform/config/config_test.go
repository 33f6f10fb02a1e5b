package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PGSQL_URL", "postgres://localhost/invoices")
	t.Setenv("JWT_EXPIRY_DURATION", "not-a-duration")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/invoices", cfg.DatabaseURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenExpiryDuration)
	assert.Equal(t, "rtid", cfg.RefreshTokenCookieName)
	assert.Equal(t, "/api/v1/auth", cfg.RefreshTokenCookiePath)
	assert.Equal(t, "5-M", cfg.AuthRateLimit)
	assert.Equal(t, "en_US", cfg.DefaultLocale)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
	assert.Equal(t, []string{cfg.FrontendBaseURL}, cfg.CORSAllowedOrigins)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("IS_PRODUCTION", "true")
	t.Setenv("JWT_EXPIRY_DURATION", "15m")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://app.example.com , ,https://admin.example.com")
	t.Setenv("DEFAULT_LOCALE", "de_DE")
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_FILE", "/run/secrets/sheets.json")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction)
	assert.Equal(t, 15*time.Minute, cfg.JWTExpiryDuration)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "de_DE", cfg.DefaultLocale)
	assert.Equal(t, "/run/secrets/sheets.json", cfg.GoogleSheetsCredentialsFile)
}
