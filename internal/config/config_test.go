package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("REMINDER_INTERVAL", "")
	t.Setenv("DEFAULT_TIMEZONE", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 5*time.Minute, cfg.ReminderInterval)
	assert.Equal(t, "America/Sao_Paulo", cfg.DefaultTimezone)
	assert.False(t, cfg.IsProduction())
	assert.Empty(t, cfg.CORSAllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("REMINDER_INTERVAL", "30s")
	t.Setenv("PUBLIC_RATE_LIMIT_BURST", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.barber.club, ,https://admin.barber.club")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr())
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 30*time.Second, cfg.ReminderInterval)
	assert.Equal(t, 20, cfg.PublicRateLimitBurst)
	assert.Equal(t, []string{"https://app.barber.club", "https://admin.barber.club"}, cfg.CORSAllowedOrigins)
}
