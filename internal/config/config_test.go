package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("UPSTREAM_URL", "http://boards.local/")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 10, cfg.PageSize)
	require.Equal(t, 1, cfg.MoveRetries)
	require.Equal(t, "http://boards.local", cfg.UpstreamURL)
	require.Equal(t, 5*time.Minute, cfg.SnapshotTTL)
	require.Equal(t, ":8008", cfg.Addr())
	require.Empty(t, cfg.RedisURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PAGE_SIZE", "25")
	t.Setenv("MOVE_RETRIES", "0")
	t.Setenv("SNAPSHOT_TTL", "30s")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 25, cfg.PageSize)
	require.Equal(t, 0, cfg.MoveRetries)
	require.Equal(t, 30*time.Second, cfg.SnapshotTTL)
	require.True(t, cfg.Debug)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("PAGE_SIZE", "0")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("PAGE_SIZE", "10")
	t.Setenv("UPSTREAM_TIMEOUT", "soon")
	_, err = Load()
	require.Error(t, err)
}
