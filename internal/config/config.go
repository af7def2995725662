// Package config loads the player configuration.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "reel"

// Config is the root configuration.
type Config struct {
	Logging LoggingConfig `koanf:"logging"`
	Player  PlayerConfig  `koanf:"player"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level     string `koanf:"level"`  // "debug", "info", "warn", "error"
	Format    string `koanf:"format"` // "json" or "text"
	AddSource bool   `koanf:"add_source"`
}

// PlayerConfig controls the playback core.
type PlayerConfig struct {
	// DetachSurfaceTimeout bounds how long the control goroutine
	// blocks waiting for video renderers to confirm a surface swap.
	DetachSurfaceTimeout Duration `koanf:"detach_surface_timeout"`

	// ReleaseTimeout bounds the renderer hand-off performed by
	// Release.
	ReleaseTimeout Duration `koanf:"release_timeout"`

	// FailOnWrongGoroutine makes public operations called off the
	// control goroutine fail instead of logging a one-time warning.
	FailOnWrongGoroutine bool `koanf:"fail_on_wrong_goroutine"`

	// LiveEdgeProjection is the default projection applied when
	// seeking to the default position of a live window.
	LiveEdgeProjection Duration `koanf:"live_edge_projection"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Player: PlayerConfig{
			DetachSurfaceTimeout: Duration(2 * time.Second),
			ReleaseTimeout:       Duration(500 * time.Millisecond),
		},
	}
}

// Load reads the configuration files, later paths overriding earlier
// ones, on top of the defaults.
func Load() (*Config, error) {
	return load(configPaths())
}

// LoadFrom reads a single configuration file on top of the defaults.
func LoadFrom(path string) (*Config, error) {
	return load([]string{path})
}

func load(paths []string) (*Config, error) {
	k := koanf.New(".")
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, err
		}
	}
	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configPaths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		appName + ".toml", // cwd override
	}
}
