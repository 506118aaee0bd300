// Filename: internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfigPopulatesEverySection(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, "driftcursor", cfg.Logger.ServiceName)

	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 1440, cfg.Browser.WindowWidth)
	assert.Equal(t, 900, cfg.Browser.WindowHeight)
	assert.Equal(t, 90*time.Second, cfg.Browser.NavigationTimeout)
	assert.Equal(t, 250.0, cfg.Browser.DispatchRate)

	assert.Equal(t, 500.0, cfg.Cursor.OvershootThreshold)
	assert.Equal(t, 120.0, cfg.Cursor.OvershootRadius)
	assert.Equal(t, 10, cfg.Cursor.MaxTries)
	assert.Equal(t, 30*time.Second, cfg.Cursor.SelectorWait)
	assert.Equal(t, 500*time.Millisecond, cfg.Cursor.SettleDelay)
	assert.Equal(t, 2*time.Second, cfg.Cursor.RoamDelay)
	assert.True(t, cfg.Cursor.RandomizeRoamDelay)
	assert.Equal(t, 100, cfg.Cursor.ScrollSpeed)
	assert.Equal(t, 40*time.Millisecond, cfg.Cursor.ClickHoldMin)
	assert.Equal(t, 150*time.Millisecond, cfg.Cursor.ClickHoldMax)
}

func TestDefaultConfigValidates(t *testing.T) {
	assert.NoError(t, NewDefaultConfig().Validate())
}

func TestNewConfigFromViperOverride(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("cursor.max_tries", 3)
	v.Set("cursor.scroll_speed", 25)
	v.Set("browser.headless", false)

	cfg, err := NewConfigFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Cursor.MaxTries)
	assert.Equal(t, 25, cfg.Cursor.ScrollSpeed)
	assert.False(t, cfg.Browser.Headless)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{
			name:   "zero max tries",
			mutate: func(c *Config) { c.Cursor.MaxTries = 0 },
			errMsg: "max_tries",
		},
		{
			name:   "scroll speed too low",
			mutate: func(c *Config) { c.Cursor.ScrollSpeed = 0 },
			errMsg: "scroll_speed",
		},
		{
			name:   "scroll speed too high",
			mutate: func(c *Config) { c.Cursor.ScrollSpeed = 101 },
			errMsg: "scroll_speed",
		},
		{
			name:   "negative padding",
			mutate: func(c *Config) { c.Cursor.PaddingPercent = -1 },
			errMsg: "padding_percent",
		},
		{
			name:   "inverted click hold bounds",
			mutate: func(c *Config) { c.Cursor.ClickHoldMax = c.Cursor.ClickHoldMin - time.Millisecond },
			errMsg: "click_hold_max",
		},
		{
			name:   "zero window width",
			mutate: func(c *Config) { c.Browser.WindowWidth = 0 },
			errMsg: "window",
		},
		{
			name:   "negative dispatch rate",
			mutate: func(c *Config) { c.Browser.DispatchRate = -1 },
			errMsg: "dispatch_rate",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNewConfigFromViperRejectsInvalid(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("cursor.scroll_speed", 0)

	_, err := NewConfigFromViper(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
