package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Log
		Covers
		CoverBackfill
		Tasks
		Demo
	}

	HTTP struct {
		Port               int32
		Host               string
		CORSAllowedOrigins []string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path         string
		MaxOpenConns int
		LogQueries   bool
	}
	Log struct {
		Level  string
		Format string // "json" or "console"
	}
	Covers struct {
		Enabled        bool
		APIURL         string
		OpenLibraryURL string
		RateLimit      float64 // requests per second
		Timeout        time.Duration
	}
	CoverBackfill struct {
		Enabled  bool
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Demo struct {
		Enabled bool // Block write operations
	}
)

// Load reads a .env file if present and then builds the config from the
// environment.
func Load() *Config {
	// A missing .env is the normal case outside development.
	_ = godotenv.Load()
	return NewConfig()
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 3000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("cors_allowed_origins", "http://localhost:5173")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("database_file", DefaultDatabasePath)
	v.SetDefault("database_max_open_conns", 4)
	v.SetDefault("database_log_queries", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	// Cover lookup defaults
	v.SetDefault("covers_enabled", true)
	v.SetDefault("cover_api_url", DefaultCoverAPIURL)
	v.SetDefault("openlibrary_url", DefaultOpenLibraryURL)
	v.SetDefault("cover_rate_limit", 1.0)
	v.SetDefault("cover_timeout", "10s")
	v.SetDefault("cover_backfill_enabled", false)
	v.SetDefault("cover_backfill_schedule", "0 3 * * *")

	// Task queue defaults
	v.SetDefault("tasks_enabled", false)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("demo_mode", false)

	return &Config{
		HTTP: HTTP{
			Port:               v.GetInt32("PORT"),
			Host:               v.GetString("HOST"),
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path:         v.GetString("DATABASE_FILE"),
			MaxOpenConns: v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			LogQueries:   v.GetBool("DATABASE_LOG_QUERIES"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Covers: Covers{
			Enabled:        v.GetBool("COVERS_ENABLED"),
			APIURL:         v.GetString("COVER_API_URL"),
			OpenLibraryURL: v.GetString("OPENLIBRARY_URL"),
			RateLimit:      v.GetFloat64("COVER_RATE_LIMIT"),
			Timeout:        v.GetDuration("COVER_TIMEOUT"),
		},
		CoverBackfill: CoverBackfill{
			Enabled:  v.GetBool("COVER_BACKFILL_ENABLED"),
			Schedule: v.GetString("COVER_BACKFILL_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Demo: Demo{
			Enabled: v.GetBool("DEMO_MODE"),
		},
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
