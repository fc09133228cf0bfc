package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/dpizoom/internal/zoom"
)

// DisplaySource selects where display geometry comes from.
type DisplaySource string

const (
	DisplaySourceBrowser DisplaySource = "browser" // system.display via the extension
	DisplaySourceX11     DisplaySource = "x11"     // RandR on $DISPLAY
)

// ZoomConfig configures the two zoom tiers and when each applies.
type ZoomConfig struct {
	Normal          float64 `yaml:"normal"`
	HiDPI           float64 `yaml:"hidpi"`
	WidthThreshold  int     `yaml:"width_threshold"`
	HeightThreshold int     `yaml:"height_threshold"`
	// OverrideCustom replaces zoom factors the user set by hand.
	OverrideCustom bool `yaml:"override_custom"`
}

type DisplaysConfig struct {
	Source DisplaySource `yaml:"source"`
}

// LoggingConfig configures the host log.
type LoggingConfig struct {
	// Level controls logging verbosity: debug, info, warn, error
	Level string `yaml:"level"`
	// File is the log file path. Empty logs to stderr, which the browser
	// captures.
	File string `yaml:"file,omitempty"`
}

// Config is the effective configuration.
type Config struct {
	Zoom           ZoomConfig     `yaml:"zoom"`
	Displays       DisplaysConfig `yaml:"displays"`
	ResyncInterval time.Duration  `yaml:"resync_interval"`
	Logging        LoggingConfig  `yaml:"logging"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	policy := zoom.DefaultPolicy()
	return &Config{
		Zoom: ZoomConfig{
			Normal:          float64(policy.Normal),
			HiDPI:           float64(policy.HiDPI),
			WidthThreshold:  policy.WidthThreshold,
			HeightThreshold: policy.HeightThreshold,
		},
		Displays: DisplaysConfig{Source: DisplaySourceBrowser},
		Logging:  LoggingConfig{Level: "info"},
	}
}

// Policy returns the zoom policy described by the config.
func (c *Config) Policy() zoom.Policy {
	return zoom.Policy{
		WidthThreshold:  c.Zoom.WidthThreshold,
		HeightThreshold: c.Zoom.HeightThreshold,
		Normal:          zoom.Factor(c.Zoom.Normal),
		HiDPI:           zoom.Factor(c.Zoom.HiDPI),
	}
}

// Marshal renders the effective config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// ValidationError ties a validation failure to a config path and, when
// known, the file position that set it.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if c.Zoom.Normal <= 0 {
		return &ValidationError{Path: "zoom.normal", Err: fmt.Errorf("normal must be > 0")}
	}
	if c.Zoom.HiDPI <= 0 {
		return &ValidationError{Path: "zoom.hidpi", Err: fmt.Errorf("hidpi must be > 0")}
	}
	if c.Zoom.Normal == c.Zoom.HiDPI {
		return &ValidationError{Path: "zoom.hidpi", Err: fmt.Errorf("hidpi must differ from normal")}
	}
	if c.Zoom.WidthThreshold <= 0 {
		return &ValidationError{Path: "zoom.width_threshold", Err: fmt.Errorf("width_threshold must be > 0")}
	}
	if c.Zoom.HeightThreshold <= 0 {
		return &ValidationError{Path: "zoom.height_threshold", Err: fmt.Errorf("height_threshold must be > 0")}
	}
	switch c.Displays.Source {
	case DisplaySourceBrowser, DisplaySourceX11:
	default:
		return &ValidationError{Path: "displays.source", Err: fmt.Errorf("source must be one of: browser, x11")}
	}
	if c.ResyncInterval < 0 {
		return &ValidationError{Path: "resync_interval", Err: fmt.Errorf("resync_interval must be >= 0")}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "logging.level", Err: fmt.Errorf("level must be one of: debug, info, warn, error")}
	}
	return nil
}
