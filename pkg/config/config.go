package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config groups the application configuration (read via Viper from env and
// optionally a .env file). Built once at startup and never mutated afterwards.
type Config struct {
	App   AppConfig
	HTTP  HTTPConfig
	Mongo MongoConfig
	JWT   JWTConfig
	Reset ResetConfig
}

// AppConfig general application settings.
type AppConfig struct {
	Env         string // development, staging, production
	Name        string
	CORSOrigins string // comma-separated list of allowed origins
}

// IsProduction reports whether the app runs in production mode.
func (c AppConfig) IsProduction() bool { return c.Env == "production" }

// HTTPConfig HTTP server settings.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns the listen address (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MongoConfig MongoDB connection settings.
type MongoConfig struct {
	URI      string
	Database string
}

// JWTConfig token signing settings. Access tokens are short-lived, refresh
// tokens long-lived; each kind is HMAC-signed with its own secret.
type JWTConfig struct {
	AccessSecret     string
	AccessTTLMinutes int
	RefreshSecret    string
	RefreshTTLDays   int
}

// ResetConfig password-reset settings.
type ResetConfig struct {
	TokenTTLMinutes int
	UILink          string // base URL of the frontend reset page
}

// Load reads configuration from environment variables (and optionally from a
// .env file in the working directory). Env vars take priority.
// Expected names: APP_ENV, HTTP_PORT, MONGO_URI, JWT_ACCESS_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Optional .env file; a missing file is not an error.
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:         getString(v, "APP_ENV", "development"),
			Name:        getString(v, "APP_NAME", "bookshop-api"),
			CORSOrigins: getString(v, "CORS_ORIGINS", "http://localhost:5173"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Mongo: MongoConfig{
			URI:      getString(v, "MONGO_URI", "mongodb://localhost:27017"),
			Database: getString(v, "MONGO_DB", "bookshop"),
		},
		JWT: JWTConfig{
			AccessSecret:     getString(v, "JWT_ACCESS_SECRET", ""),
			AccessTTLMinutes: getInt(v, "JWT_ACCESS_TTL_MINUTES", 15),
			RefreshSecret:    getString(v, "JWT_REFRESH_SECRET", ""),
			RefreshTTLDays:   getInt(v, "JWT_REFRESH_TTL_DAYS", 365),
		},
		Reset: ResetConfig{
			TokenTTLMinutes: getInt(v, "RESET_PASSWORD_TTL_MINUTES", 10),
			UILink:          getString(v, "RESET_PASSWORD_UI_LINK", "http://localhost:5173/reset-password"),
		},
	}

	if cfg.JWT.AccessSecret == "" || cfg.JWT.RefreshSecret == "" {
		return nil, fmt.Errorf("config: JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required")
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
