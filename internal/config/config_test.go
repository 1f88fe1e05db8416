package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airtrace/airtrace/internal/core"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 65535, cfg.Capture.Snaplen)
	assert.False(t, cfg.Capture.Promisc)
	assert.Equal(t, "console", cfg.Sink.Type)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
capture:
  interface: wlan0mon
  snaplen: 2048
  frame_types: [management]
sink:
  type: console
  options:
    show_body: true
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "wlan0mon", cfg.Capture.Interface)
	assert.Equal(t, 2048, cfg.Capture.Snaplen)
	assert.Equal(t, []string{"management"}, cfg.Capture.FrameTypes)
	assert.Equal(t, true, cfg.Sink.Options["show_body"])
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("AIRTRACE_CAPTURE_INTERFACE", "wlan1mon")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "wlan1mon", cfg.Capture.Interface)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		cfg.Capture.File = "capture.pcap"
		return cfg
	}

	assert.NoError(t, base().Validate())

	cfg := base()
	cfg.Capture.File = ""
	err := cfg.Validate()
	assert.True(t, errors.Is(err, core.ErrConfigInvalid), "no source: %v", err)

	cfg = base()
	cfg.Capture.Interface = "wlan0mon"
	err = cfg.Validate()
	assert.True(t, errors.Is(err, core.ErrConfigInvalid), "both sources: %v", err)

	cfg = base()
	cfg.Capture.FrameTypes = []string{"beacon"}
	err = cfg.Validate()
	assert.True(t, errors.Is(err, core.ErrConfigInvalid), "bad frame type: %v", err)

	cfg = base()
	cfg.Sink.Type = "kafka"
	err = cfg.Validate()
	assert.True(t, errors.Is(err, core.ErrConfigInvalid), "bad sink: %v", err)

	cfg = base()
	cfg.Capture.Snaplen = 0
	err = cfg.Validate()
	assert.True(t, errors.Is(err, core.ErrConfigInvalid), "zero snaplen: %v", err)
}

func TestRenderRoundTrip(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Capture.File = "capture.pcap"
	cfg.Capture.FrameTypes = []string{"management", "data"}

	out, err := cfg.Render()
	require.NoError(t, err)

	assert.Contains(t, out, "file: capture.pcap")
	assert.Contains(t, out, "- management")
	assert.Contains(t, out, "level: info")
}
