// Package cli holds shared plumbing for the glimpse command line,
// mainly configuration file loading.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when no explicit
// config path is given.
const DefaultConfigFile = ".glimpse.yaml"

// DefaultPort is the bridge port instrumented applications listen on.
const DefaultPort = 9999

// Config is the CLI configuration. Flags override file values; file
// values override these defaults.
type Config struct {
	Port        int            `mapstructure:"port"`
	App         string         `mapstructure:"app"`
	BridgeURL   string         `mapstructure:"bridge_url"`
	LogLevel    string         `mapstructure:"log_level"`
	TimeoutSecs int            `mapstructure:"timeout_secs"`
	Viewport    ViewportConfig `mapstructure:"viewport"`
}

// ViewportConfig sizes the visible area reported by diagnostics.
type ViewportConfig struct {
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Port:        DefaultPort,
		LogLevel:    "info",
		TimeoutSecs: 10,
		Viewport:    ViewportConfig{Width: 800, Height: 600},
	}
}

// LoadConfig reads a YAML config file over the defaults. A missing file is
// not an error; a malformed one is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := mapstructure.Decode(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("apply %s: %w", path, err)
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return cfg, fmt.Errorf("invalid port %d in %s", cfg.Port, path)
	}
	return cfg, nil
}

// ResolveBridgeURL returns the explicit bridge URL or the loopback default
// derived from the configured port.
func (c Config) ResolveBridgeURL() string {
	if c.BridgeURL != "" {
		return strings.TrimRight(c.BridgeURL, "/")
	}
	return fmt.Sprintf("http://127.0.0.1:%d", c.Port)
}

// SlogLevel maps the configured level name onto slog. Unknown names fall
// back to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
