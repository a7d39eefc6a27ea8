package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.GinMode)
	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, 30*time.Second, cfg.ServerTimeout)
	assert.Equal(t, "http://localhost:8000", cfg.BackendURL)
	assert.Equal(t, 15*time.Second, cfg.BackendTimeout)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "weather_ui.db", cfg.DBSource)
	assert.Equal(t, time.Hour, cfg.DBConnMaxLifetime)
	assert.True(t, cfg.SessionExpiryCheck)
	assert.Equal(t, "@hourly", cfg.SessionPurgeSchedule)
	assert.Equal(t, 30*time.Minute, cfg.ClientIdleTimeout)
	assert.Equal(t, "wpui_browser", cfg.BrowserCookieName)
	assert.Equal(t, 365*24*time.Hour, cfg.CookieMaxAge)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BACKEND_URL", "https://weather.example.com/api/")
	t.Setenv("BACKEND_TIMEOUT_SECONDS", "3")
	t.Setenv("SERVER_TIMEOUT_SECONDS", "45")
	t.Setenv("DB_CONN_MAX_LIFETIME_MINUTES", "10")
	t.Setenv("CLIENT_IDLE_TIMEOUT_MINUTES", "5")
	t.Setenv("COOKIE_MAX_AGE_DAYS", "7")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_SOURCE", "host=db user=ui dbname=ui sslmode=disable")
	t.Setenv("SESSION_EXPIRY_CHECK", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://weather.example.com/api", cfg.BackendURL)
	assert.Equal(t, 3*time.Second, cfg.BackendTimeout)
	assert.Equal(t, 45*time.Second, cfg.ServerTimeout)
	assert.Equal(t, 10*time.Minute, cfg.DBConnMaxLifetime)
	assert.Equal(t, 5*time.Minute, cfg.ClientIdleTimeout)
	assert.Equal(t, 7*24*time.Hour, cfg.CookieMaxAge)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.False(t, cfg.SessionExpiryCheck)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"backend url not a url", "BACKEND_URL", "not a url"},
		{"unknown driver", "DB_DRIVER", "mysql"},
		{"unknown gin mode", "GIN_MODE", "verbose"},
		{"zero backend timeout", "BACKEND_TIMEOUT_SECONDS", "0"},
		{"zero idle timeout", "CLIENT_IDLE_TIMEOUT_MINUTES", "0"},
		{"bad same site", "COOKIE_SAME_SITE", "sometimes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
			assert.Nil(t, cfg)
		})
	}
}
