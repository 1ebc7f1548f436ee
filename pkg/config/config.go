// Package config reads process settings from the environment (optionally
// seeded from a .env file) and builds the shared slog logger.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every setting the server reads at startup.
type Config struct {
	Port      string
	AppEnv    string
	LogLevel  slog.Level
	LogFormat string

	DBDriver           string // postgres | sqlite
	DatabaseURL        string
	DBMaxOpenConns     int
	DBMaxIdleConns     int
	DBConnMaxLifetimeM int

	StorageDriver string // local | supabase | s3
	UploadDir     string

	SupabaseURL        string
	SupabaseServiceKey string
	SupabaseBucket     string

	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PublicURL       string
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:      getEnvDefault("PORT", "3000"),
		AppEnv:    getEnvDefault("APP_ENV", "dev"),
		LogFormat: strings.ToLower(getEnvDefault("LOG_FORMAT", "text")),

		DBDriver:           strings.ToLower(getEnvDefault("DB_DRIVER", "postgres")),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		DBMaxOpenConns:     getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:     getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetimeM: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 30),

		StorageDriver: strings.ToLower(getEnvDefault("STORAGE_DRIVER", "local")),
		UploadDir:     getEnvDefault("UPLOAD_DIR", "uploads"),

		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseServiceKey: os.Getenv("SUPABASE_SERVICE_KEY"),
		SupabaseBucket:     os.Getenv("SUPABASE_BUCKET"),

		S3Bucket:          os.Getenv("S3_BUCKET"),
		S3Region:          getEnvDefault("S3_REGION", "auto"),
		S3Endpoint:        os.Getenv("S3_ENDPOINT"),
		S3AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		S3SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		S3PublicURL:       os.Getenv("S3_PUBLIC_URL"),
	}

	var err error
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("LOG_FORMAT: unsupported value %q (json, text)", cfg.LogFormat)
	}
	switch cfg.DBDriver {
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL: required for postgres driver")
		}
	case "sqlite":
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = "file:legal.db?_foreign_keys=on"
		}
	default:
		return nil, fmt.Errorf("DB_DRIVER: unsupported value %q (postgres, sqlite)", cfg.DBDriver)
	}
	switch cfg.StorageDriver {
	case "local", "supabase", "s3":
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER: unsupported value %q (local, supabase, s3)", cfg.StorageDriver)
	}

	return cfg, nil
}

// IsDev reports whether the server runs in a development environment.
func (c *Config) IsDev() bool { return c.AppEnv == "dev" }

// SetupLogger builds the process logger and installs it as slog's default.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func getEnvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// getEnvInt falls back to def when the variable is unset or not a positive integer.
func getEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unsupported level %q (debug, info, warn, error)", level)
	}
}
