package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the service settings, read from the environment.
type Config struct {
	Port         string
	DatabasePath string
	Debug        bool

	// UpstreamURL is the base URL of the board backend (the app rendering the board).
	UpstreamURL     string
	UpstreamTimeout time.Duration

	PageSize    int
	MoveRetries int

	SnapshotTTL  time.Duration
	ViewStateTTL time.Duration
	// RedisURL enables the shared view-state store when set.
	RedisURL string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// Load reads the configuration from environment variables, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8008"),
		DatabasePath: getEnv("DATABASE_PATH", "board-view.db"),
		UpstreamURL:  strings.TrimRight(getEnv("UPSTREAM_URL", "http://localhost:8000"), "/"),
		RedisURL:     os.Getenv("REDIS_URL"),
		JWTSecret:    getEnv("JWT_SECRET", "development-insecure-secret-change-me"),
		JWTIssuer:    getEnv("JWT_ISSUER", "board-view-api"),
		JWTAudience:  getEnv("JWT_AUDIENCE", "board-view-clients"),
	}

	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil {
		cfg.Debug = dbg
	}

	var err error
	if cfg.PageSize, err = getInt("PAGE_SIZE", 10); err != nil {
		return nil, err
	}
	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("invalid PAGE_SIZE: must be greater than zero")
	}
	if cfg.MoveRetries, err = getInt("MOVE_RETRIES", 1); err != nil {
		return nil, err
	}
	if cfg.MoveRetries < 0 {
		return nil, fmt.Errorf("invalid MOVE_RETRIES: must not be negative")
	}
	if cfg.UpstreamTimeout, err = getDuration("UPSTREAM_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.SnapshotTTL, err = getDuration("SNAPSHOT_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ViewStateTTL, err = getDuration("VIEW_STATE_TTL", 12*time.Hour); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
