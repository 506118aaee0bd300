// File: internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the entire application configuration.
type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	Browser BrowserConfig `mapstructure:"browser" yaml:"browser"`
	Cursor  CursorConfig  `mapstructure:"cursor" yaml:"cursor"`
}

// LoggerConfig controls the zap logger: console output plus an optional
// rotated JSON file.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// BrowserConfig controls the Chrome instance and the CDP transport.
type BrowserConfig struct {
	Headless          bool          `mapstructure:"headless" yaml:"headless"`
	UserAgent         string        `mapstructure:"user_agent" yaml:"user_agent"`
	WindowWidth       int           `mapstructure:"window_width" yaml:"window_width"`
	WindowHeight      int           `mapstructure:"window_height" yaml:"window_height"`
	NavigationTimeout time.Duration `mapstructure:"navigation_timeout" yaml:"navigation_timeout"`
	// DispatchRate caps pointer events per second on the transport;
	// zero disables throttling.
	DispatchRate float64 `mapstructure:"dispatch_rate" yaml:"dispatch_rate"`
}

// CursorConfig tunes the motion models. See internal/cursor for the
// semantics of each knob.
type CursorConfig struct {
	OvershootThreshold float64       `mapstructure:"overshoot_threshold" yaml:"overshoot_threshold"`
	OvershootRadius    float64       `mapstructure:"overshoot_radius" yaml:"overshoot_radius"`
	CorrectionSpread   float64       `mapstructure:"correction_spread" yaml:"correction_spread"`
	MaxTries           int           `mapstructure:"max_tries" yaml:"max_tries"`
	PaddingPercent     float64       `mapstructure:"padding_percent" yaml:"padding_percent"`
	MoveSpeed          float64       `mapstructure:"move_speed" yaml:"move_speed"`
	UseTimestamps      bool          `mapstructure:"use_timestamps" yaml:"use_timestamps"`
	SelectorWait       time.Duration `mapstructure:"selector_wait" yaml:"selector_wait"`
	SettleDelay        time.Duration `mapstructure:"settle_delay" yaml:"settle_delay"`
	RoamDelay          time.Duration `mapstructure:"roam_delay" yaml:"roam_delay"`
	RandomizeRoamDelay bool          `mapstructure:"randomize_roam_delay" yaml:"randomize_roam_delay"`
	ScrollSpeed        int           `mapstructure:"scroll_speed" yaml:"scroll_speed"`
	ScrollMargin       float64       `mapstructure:"scroll_margin" yaml:"scroll_margin"`
	ClickHoldMin       time.Duration `mapstructure:"click_hold_min" yaml:"click_hold_min"`
	ClickHoldMax       time.Duration `mapstructure:"click_hold_max" yaml:"click_hold_max"`
}

// SetDefaults initializes default values for all configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "driftcursor")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- Browser --
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.window_width", 1440)
	v.SetDefault("browser.window_height", 900)
	v.SetDefault("browser.navigation_timeout", "90s")
	v.SetDefault("browser.dispatch_rate", 250.0)

	// -- Cursor --
	v.SetDefault("cursor.overshoot_threshold", 500.0)
	v.SetDefault("cursor.overshoot_radius", 120.0)
	v.SetDefault("cursor.correction_spread", 10.0)
	v.SetDefault("cursor.max_tries", 10)
	v.SetDefault("cursor.padding_percent", 0.0)
	v.SetDefault("cursor.move_speed", 0.0)
	v.SetDefault("cursor.use_timestamps", true)
	v.SetDefault("cursor.selector_wait", "30s")
	v.SetDefault("cursor.settle_delay", "500ms")
	v.SetDefault("cursor.roam_delay", "2s")
	v.SetDefault("cursor.randomize_roam_delay", true)
	v.SetDefault("cursor.scroll_speed", 100)
	v.SetDefault("cursor.scroll_margin", 30.0)
	v.SetDefault("cursor.click_hold_min", "40ms")
	v.SetDefault("cursor.click_hold_max", "150ms")
}

// NewDefaultConfig creates a configuration populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Cannot happen with defaults only.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// NewConfigFromViper creates a validated configuration from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	if c.Cursor.MaxTries <= 0 {
		return fmt.Errorf("cursor.max_tries must be a positive integer")
	}
	if c.Cursor.ScrollSpeed < 1 || c.Cursor.ScrollSpeed > 100 {
		return fmt.Errorf("cursor.scroll_speed must be in [1, 100]")
	}
	if c.Cursor.PaddingPercent < 0 || c.Cursor.PaddingPercent > 100 {
		return fmt.Errorf("cursor.padding_percent must be in [0, 100]")
	}
	if c.Cursor.ClickHoldMax < c.Cursor.ClickHoldMin {
		return fmt.Errorf("cursor.click_hold_max must not be below cursor.click_hold_min")
	}
	if c.Browser.WindowWidth <= 0 || c.Browser.WindowHeight <= 0 {
		return fmt.Errorf("browser window dimensions must be positive")
	}
	if c.Browser.DispatchRate < 0 {
		return fmt.Errorf("browser.dispatch_rate must not be negative")
	}
	return nil
}
