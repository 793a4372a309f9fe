package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, 800, cfg.Viewport.Width)
	assert.Equal(t, 600, cfg.Viewport.Height)
	assert.Equal(t, 100.0, cfg.Scroll.Step)
	assert.Equal(t, 30*time.Second, cfg.Network.Timeout)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, "lantern", cfg.Logger.ServiceName)
	assert.Empty(t, cfg.Style.UserAgentSheet)
	require.NoError(t, cfg.Validate())
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		message string
	}{
		{"zero width", func(c *Config) { c.Viewport.Width = 0 }, "viewport.width must be a positive integer"},
		{"negative height", func(c *Config) { c.Viewport.Height = -1 }, "viewport.height must be a positive integer"},
		{"zero scroll step", func(c *Config) { c.Scroll.Step = 0 }, "scroll.step must be positive"},
		{"zero timeout", func(c *Config) { c.Network.Timeout = 0 }, "network.timeout must be positive"},
		{"unknown log format", func(c *Config) { c.Logger.Format = "xml" }, "logger.format must be console or json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestNewConfigFromViper(t *testing.T) {
	t.Run("loads a yaml file over defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "lantern.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
viewport:
  width: 1024
network:
  timeout: 5s
logger:
  level: debug
`), 0o600))

		v, err := Load(path)
		require.NoError(t, err)
		cfg, err := NewConfigFromViper(v)
		require.NoError(t, err)

		assert.Equal(t, 1024, cfg.Viewport.Width)
		assert.Equal(t, 600, cfg.Viewport.Height, "unset keys keep their default")
		assert.Equal(t, 5*time.Second, cfg.Network.Timeout)
		assert.Equal(t, "debug", cfg.Logger.Level)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("LANTERN_VIEWPORT_HEIGHT", "300")
		t.Setenv("LANTERN_SCROLL_STEP", "40")

		v, err := Load("")
		require.NoError(t, err)
		cfg, err := NewConfigFromViper(v)
		require.NoError(t, err)

		assert.Equal(t, 300, cfg.Viewport.Height)
		assert.Equal(t, 40.0, cfg.Scroll.Step)
	})

	t.Run("validation failure", func(t *testing.T) {
		v := viper.New()
		SetDefaults(v)
		v.Set("viewport.width", 0)

		cfg, err := NewConfigFromViper(v)
		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}
