package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Content backends.
const (
	BackendSupabase = "supabase"
	BackendSQLite   = "sqlite"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort   string
	LogLevel  slog.Level
	LogFormat string

	ContentBackend string
	SupabaseURL    string
	SupabaseKey    string
	DBPath         string
	// SeedPath is an optional JSON dataset imported into SQLite at startup.
	SeedPath   string
	AdminToken string

	// RedisURL is optional; without it the snapshot cache is disabled.
	RedisURL             string
	SnapshotTTL          time.Duration
	IndexRefreshInterval time.Duration

	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration

	TreeSessionIdle time.Duration
	CORSOrigin      string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:        getEnv("API_PORT", "9000"),
		LogFormat:      strings.ToLower(getEnv("LOG_FORMAT", "text")),
		ContentBackend: strings.ToLower(getEnv("CONTENT_BACKEND", BackendSupabase)),
		SupabaseURL:    getEnv("SUPABASE_URL", ""),
		SupabaseKey:    getEnv("SUPABASE_KEY", ""),
		DBPath:         getEnv("DB_PATH", "./data/rulebook.db"),
		SeedPath:       getEnv("SEED_PATH", ""),
		AdminToken:     getEnv("ADMIN_TOKEN", ""),
		RedisURL:       getEnv("REDIS_URL", ""),
		CORSOrigin:     getEnv("CORS_ORIGIN", ""),
	}

	if cfg.LogLevel, err = parseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	durations := []struct {
		key string
		def string
		dst *time.Duration
	}{
		{"SNAPSHOT_TTL", "10m", &cfg.SnapshotTTL},
		{"INDEX_REFRESH_INTERVAL", "0", &cfg.IndexRefreshInterval},
		{"BREAKER_OPEN_TIMEOUT", "30s", &cfg.BreakerOpenTimeout},
		{"TREE_SESSION_IDLE", "30m", &cfg.TreeSessionIdle},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(getEnv(d.key, d.def))
		if err != nil {
			return nil, fmt.Errorf("%s must be a valid duration: %w", d.key, err)
		}
		if v < 0 {
			return nil, fmt.Errorf("%s must not be negative", d.key)
		}
		*d.dst = v
	}

	maxFailures, err := strconv.ParseUint(getEnv("BREAKER_MAX_FAILURES", "5"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("BREAKER_MAX_FAILURES must be a valid integer: %w", err)
	}
	if maxFailures == 0 {
		return nil, fmt.Errorf("BREAKER_MAX_FAILURES must be greater than 0")
	}
	cfg.BreakerMaxFailures = uint32(maxFailures)

	switch cfg.ContentBackend {
	case BackendSupabase:
		if cfg.SupabaseURL == "" {
			return nil, fmt.Errorf("SUPABASE_URL is required for the supabase backend")
		}
		if cfg.SupabaseKey == "" {
			return nil, fmt.Errorf("SUPABASE_KEY is required for the supabase backend")
		}
	case BackendSQLite:
		// Create the data directory if it doesn't exist
		dataDir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	default:
		return nil, fmt.Errorf("CONTENT_BACKEND must be %s or %s, got %q", BackendSupabase, BackendSQLite, cfg.ContentBackend)
	}

	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error: %w", err)
	}
	return level, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
