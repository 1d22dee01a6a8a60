package cli

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10, cfg.TimeoutSecs)
	assert.Equal(t, 800.0, cfg.Viewport.Width)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
port: 4100
app: kiosk
log_level: debug
viewport:
  width: 1280
  height: 720
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 4100, cfg.Port)
	assert.Equal(t, "kiosk", cfg.App)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, 1280.0, cfg.Viewport.Width)
	// Untouched keys keep their defaults.
	assert.Equal(t, 10, cfg.TimeoutSecs)
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "port: [not a number")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRejectsBadPort(t *testing.T) {
	path := writeConfig(t, "port: 0")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestResolveBridgeURL(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://127.0.0.1:9999", cfg.ResolveBridgeURL())

	cfg.Port = 4100
	assert.Equal(t, "http://127.0.0.1:4100", cfg.ResolveBridgeURL())

	cfg.BridgeURL = "http://127.0.0.1:8088/"
	assert.Equal(t, "http://127.0.0.1:8088", cfg.ResolveBridgeURL())
}

func TestSlogLevelFallback(t *testing.T) {
	cfg := Config{LogLevel: "verbose"}
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())

	cfg.LogLevel = "ERROR"
	assert.Equal(t, slog.LevelError, cfg.SlogLevel())
}
