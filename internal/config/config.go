// Package config handles configuration loading using viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/airtrace/airtrace/internal/core"
	"github.com/airtrace/airtrace/pkg/log"
)

// Config is the top-level configuration. Maps to the root keys of the
// YAML file; every key can be overridden through the environment with an
// AIRTRACE_ prefix (AIRTRACE_CAPTURE_INTERFACE, ...).
type Config struct {
	Capture CaptureConfig `mapstructure:"capture" yaml:"capture"`
	Sink    SinkConfig    `mapstructure:"sink" yaml:"sink"`
	Log     log.Config    `mapstructure:"log" yaml:"log"`
}

// CaptureConfig selects and tunes the frame source. Exactly one of
// Interface (live capture) and File (pcap replay) must be set.
type CaptureConfig struct {
	Interface  string   `mapstructure:"interface" yaml:"interface"`
	File       string   `mapstructure:"file" yaml:"file"`
	Snaplen    int      `mapstructure:"snaplen" yaml:"snaplen"`
	Promisc    bool     `mapstructure:"promisc" yaml:"promisc"`
	FrameTypes []string `mapstructure:"frame_types" yaml:"frame_types"`
}

// SinkConfig selects the output sink; Options is passed through to the
// sink untyped.
type SinkConfig struct {
	Type    string         `mapstructure:"type" yaml:"type"`
	Options map[string]any `mapstructure:"options" yaml:"options,omitempty"`
}

var validFrameTypes = map[string]bool{
	"management": true,
	"mgmt":       true,
	"control":    true,
	"ctrl":       true,
	"data":       true,
}

// Load reads the config file at path (optional: an empty path yields
// defaults plus environment overrides) and unmarshals it.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Empty-string defaults register the keys so environment overrides
	// are visible to Unmarshal.
	v.SetDefault("capture.interface", "")
	v.SetDefault("capture.file", "")
	v.SetDefault("capture.snaplen", 65535)
	v.SetDefault("capture.promisc", false)
	v.SetDefault("sink.type", "console")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 3)

	v.SetEnvPrefix("AIRTRACE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the invariants Load cannot express.
func (c *Config) Validate() error {
	if c.Capture.Interface == "" && c.Capture.File == "" {
		return fmt.Errorf("capture.interface or capture.file is required: %w", core.ErrConfigInvalid)
	}
	if c.Capture.Interface != "" && c.Capture.File != "" {
		return fmt.Errorf("capture.interface and capture.file are mutually exclusive: %w", core.ErrConfigInvalid)
	}
	if c.Capture.Snaplen <= 0 {
		return fmt.Errorf("capture.snaplen must be positive: %w", core.ErrConfigInvalid)
	}
	for _, ft := range c.Capture.FrameTypes {
		if !validFrameTypes[strings.ToLower(strings.TrimSpace(ft))] {
			return fmt.Errorf("unknown frame type %q: %w", ft, core.ErrConfigInvalid)
		}
	}
	if c.Sink.Type != "console" {
		return fmt.Errorf("unknown sink type %q: %w", c.Sink.Type, core.ErrConfigInvalid)
	}
	return nil
}

// Render marshals the effective configuration back to YAML, for
// `airtrace config show`.
func (c *Config) Render() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to render config: %w", err)
	}
	return string(out), nil
}
