// Package config handles configuration loading and validation for the
// tracker client.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/7sg56/health-tracker-sub001/internal/core/styles"
)

// Retrieval modes for record lists.
const (
	ModePaged  = "paged"  // discrete pages, position preserved on refresh
	ModeScroll = "scroll" // accumulate pages, load-more retrieval
)

// Config holds the application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Tracker TrackerConfig `yaml:"tracker"`
	TUI     TUIConfig     `yaml:"tui"`
}

// ServerConfig points the client at the backend.
type ServerConfig struct {
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"`
	CSRFCookie string        `yaml:"csrf_cookie"`
	CSRFHeader string        `yaml:"csrf_header"`
	Debug      bool          `yaml:"debug"` // log full requests/responses
}

// TrackerConfig controls record retrieval behavior.
type TrackerConfig struct {
	PageSize    int           `yaml:"page_size"`
	WaterMode   string        `yaml:"water_mode"`   // paged | scroll
	FoodMode    string        `yaml:"food_mode"`    // paged | scroll
	WorkoutMode string        `yaml:"workout_mode"` // paged | scroll
	Sort        string        `yaml:"sort"`         // server sort directive
	AutoRefresh time.Duration `yaml:"auto_refresh"` // 0 disables
	TrendDays   int           `yaml:"trend_days"`   // dashboard trend window
}

// TUIConfig holds presentation settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			BaseURL:    "http://localhost:8080",
			Timeout:    10 * time.Second,
			CSRFCookie: "XSRF-TOKEN",
			CSRFHeader: "X-XSRF-TOKEN",
		},
		Tracker: TrackerConfig{
			PageSize:    10,
			WaterMode:   ModeScroll,
			FoodMode:    ModePaged,
			WorkoutMode: ModePaged,
			Sort:        "createdAt,desc",
			AutoRefresh: 0,
			TrendDays:   7,
		},
		TUI: TUIConfig{
			Theme: styles.DefaultTheme,
		},
	}
}

// Load reads configuration from the given path. A missing file returns
// defaults; a present but malformed file is an error.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = defaults.Server.BaseURL
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = defaults.Server.Timeout
	}
	if c.Server.CSRFCookie == "" {
		c.Server.CSRFCookie = defaults.Server.CSRFCookie
	}
	if c.Server.CSRFHeader == "" {
		c.Server.CSRFHeader = defaults.Server.CSRFHeader
	}
	if c.Tracker.PageSize == 0 {
		c.Tracker.PageSize = defaults.Tracker.PageSize
	}
	if c.Tracker.WaterMode == "" {
		c.Tracker.WaterMode = defaults.Tracker.WaterMode
	}
	if c.Tracker.FoodMode == "" {
		c.Tracker.FoodMode = defaults.Tracker.FoodMode
	}
	if c.Tracker.WorkoutMode == "" {
		c.Tracker.WorkoutMode = defaults.Tracker.WorkoutMode
	}
	if c.Tracker.Sort == "" {
		c.Tracker.Sort = defaults.Tracker.Sort
	}
	if c.Tracker.TrendDays == 0 {
		c.Tracker.TrendDays = defaults.Tracker.TrendDays
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.BaseURL == "" {
		return fmt.Errorf("server.base_url cannot be empty")
	}

	if c.Server.Timeout < 0 {
		return fmt.Errorf("server.timeout cannot be negative")
	}

	if c.Tracker.PageSize < 1 {
		return fmt.Errorf("tracker.page_size must be at least 1")
	}

	if c.Tracker.AutoRefresh < 0 {
		return fmt.Errorf("tracker.auto_refresh cannot be negative")
	}

	if c.Tracker.TrendDays < 1 {
		return fmt.Errorf("tracker.trend_days must be at least 1")
	}

	for name, mode := range map[string]string{
		"tracker.water_mode":   c.Tracker.WaterMode,
		"tracker.food_mode":    c.Tracker.FoodMode,
		"tracker.workout_mode": c.Tracker.WorkoutMode,
	} {
		if mode != ModePaged && mode != ModeScroll {
			return fmt.Errorf("%s must be %q or %q, got %q", name, ModePaged, ModeScroll, mode)
		}
	}

	if _, ok := styles.GetPalette(c.TUI.Theme); !ok {
		return fmt.Errorf("tui.theme %q is not a known theme (one of %v)", c.TUI.Theme, styles.ThemeNames())
	}

	return nil
}
