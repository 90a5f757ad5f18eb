package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

const (
	// SettingsModeEmbedded keeps role settings in the service's own database.
	SettingsModeEmbedded = "embedded"
	// SettingsModeRemote leaves the upstream CRM as the system of record.
	SettingsModeRemote = "remote"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	LogLevel    string
	HTTPAddr    string

	SettingsMode       string
	RefreshIntervalSec int

	UpstreamBaseURL string
	UpstreamToken   string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "fosse"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8087"),

		SettingsMode:       normalizeMode(getenv("SETTINGS_MODE", SettingsModeEmbedded)),
		RefreshIntervalSec: getenvInt("REFRESH_INTERVAL_SEC", 300),

		UpstreamBaseURL: strings.TrimSpace(getenv("UPSTREAM_BASE_URL", "")),
		UpstreamToken:   strings.TrimSpace(getenv("UPSTREAM_TOKEN", "")),

		DBType:            getenv("DATABASE_TYPE", "sqlite"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "fosse"),
		DBUser:            getenv("DATABASE_USER", "fosse"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 2),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 10),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 3600),
	}
}

func normalizeMode(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case SettingsModeRemote:
		return SettingsModeRemote
	default:
		return SettingsModeEmbedded
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

var Module = fx.Module("config",
	fx.Provide(Load),
)
