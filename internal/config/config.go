// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode       string        `mapstructure:"GIN_MODE" validate:"oneof=debug release test"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"SERVER_PORT" validate:"required,numeric"`
	ServerTimeout time.Duration `mapstructure:"-"` // SERVER_TIMEOUT_SECONDS

	// Prediction Backend
	BackendURL     string        `mapstructure:"BACKEND_URL" validate:"required,url"`
	BackendTimeout time.Duration `mapstructure:"-"` // BACKEND_TIMEOUT_SECONDS

	// Session Store
	DBDriver          string        `mapstructure:"DB_DRIVER" validate:"oneof=sqlite postgres"`
	DBSource          string        `mapstructure:"DB_SOURCE" validate:"required"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS" validate:"gte=0"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS" validate:"gte=0"`
	DBConnMaxLifetime time.Duration `mapstructure:"-"` // DB_CONN_MAX_LIFETIME_MINUTES

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Sessions and browser state
	SessionExpiryCheck   bool          `mapstructure:"SESSION_EXPIRY_CHECK"`
	SessionPurgeSchedule string        `mapstructure:"SESSION_PURGE_SCHEDULE"`
	ClientIdleTimeout    time.Duration `mapstructure:"-"` // CLIENT_IDLE_TIMEOUT_MINUTES
	BrowserCookieName    string        `mapstructure:"BROWSER_COOKIE_NAME" validate:"required"`
	CookieSecure         bool          `mapstructure:"COOKIE_SECURE"`
	CookieSameSite       string        `mapstructure:"COOKIE_SAME_SITE" validate:"oneof=Lax Strict None lax strict none"`
	CookieMaxAge         time.Duration `mapstructure:"-"` // COOKIE_MAX_AGE_DAYS

	// CORS
	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

// Load attempts to load configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "3000")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)

	v.SetDefault("BACKEND_URL", "http://localhost:8000")
	v.SetDefault("BACKEND_TIMEOUT_SECONDS", 15)

	// sqlite allows a single writer, so the pool defaults to one connection.
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_SOURCE", "weather_ui.db")
	v.SetDefault("DB_MAX_IDLE_CONNS", 1)
	v.SetDefault("DB_MAX_OPEN_CONNS", 1)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 60)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("SESSION_EXPIRY_CHECK", true)
	v.SetDefault("SESSION_PURGE_SCHEDULE", "@hourly")
	v.SetDefault("CLIENT_IDLE_TIMEOUT_MINUTES", 30)
	v.SetDefault("BROWSER_COOKIE_NAME", "wpui_browser")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("COOKIE_SAME_SITE", "Lax")
	v.SetDefault("COOKIE_MAX_AGE_DAYS", 365)

	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Duration fields are skipped by Unmarshal; env values carry no unit.
	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.BackendTimeout = time.Duration(v.GetInt("BACKEND_TIMEOUT_SECONDS")) * time.Second
	cfg.DBConnMaxLifetime = time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME_MINUTES")) * time.Minute
	cfg.ClientIdleTimeout = time.Duration(v.GetInt("CLIENT_IDLE_TIMEOUT_MINUTES")) * time.Minute
	cfg.CookieMaxAge = time.Duration(v.GetInt("COOKIE_MAX_AGE_DAYS")) * 24 * time.Hour

	cfg.BackendURL = strings.TrimRight(strings.TrimSpace(cfg.BackendURL), "/")
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the struct tags and the duration fields that cannot be expressed as tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.BackendTimeout <= 0 {
		return fmt.Errorf("invalid configuration: BACKEND_TIMEOUT_SECONDS must be positive")
	}
	if c.ClientIdleTimeout <= 0 {
		return fmt.Errorf("invalid configuration: CLIENT_IDLE_TIMEOUT_MINUTES must be positive")
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
