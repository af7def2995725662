package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, 2*time.Second, cfg.Player.DetachSurfaceTimeout.Std())
	assert.Equal(t, 500*time.Millisecond, cfg.Player.ReleaseTimeout.Std())
	assert.False(t, cfg.Player.FailOnWrongGoroutine)
}

func TestLoadFrom(t *testing.T) {
	path := writeConfig(t, `
[logging]
level = "debug"
format = "json"

[player]
detach_surface_timeout = "250ms"
fail_on_wrong_goroutine = true
live_edge_projection = "1s"
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 250*time.Millisecond, cfg.Player.DetachSurfaceTimeout.Std())
	assert.True(t, cfg.Player.FailOnWrongGoroutine)
	assert.Equal(t, time.Second, cfg.Player.LiveEdgeProjection.Std())

	// Unset keys keep their defaults.
	assert.Equal(t, 500*time.Millisecond, cfg.Player.ReleaseTimeout.Std())
}

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFrom_BadDuration(t *testing.T) {
	path := writeConfig(t, `
[player]
release_timeout = "not a duration"
`)
	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestDuration_Text(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1m30s")))
	assert.Equal(t, 90*time.Second, d.Std())
	assert.Equal(t, "1m30s", d.String())

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(text))

	assert.Error(t, d.UnmarshalText([]byte("eleven")))
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
