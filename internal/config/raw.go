package config

import "time"

// Raw* types mirror the file layout with pointer fields so unset keys keep
// their defaults.

type RawZoomConfig struct {
	Normal          *float64 `yaml:"normal"`
	HiDPI           *float64 `yaml:"hidpi"`
	WidthThreshold  *int     `yaml:"width_threshold"`
	HeightThreshold *int     `yaml:"height_threshold"`
	OverrideCustom  *bool    `yaml:"override_custom"`
}

type RawDisplaysConfig struct {
	Source *DisplaySource `yaml:"source"`
}

type RawLoggingConfig struct {
	Level *string `yaml:"level"`
	File  *string `yaml:"file"`
}

type RawConfig struct {
	Zoom           *RawZoomConfig     `yaml:"zoom"`
	Displays       *RawDisplaysConfig `yaml:"displays"`
	ResyncInterval *time.Duration     `yaml:"resync_interval"`
	Logging        *RawLoggingConfig  `yaml:"logging"`
}

// BuildEffectiveConfig overlays raw onto the defaults.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if z := raw.Zoom; z != nil {
		if z.Normal != nil {
			cfg.Zoom.Normal = *z.Normal
		}
		if z.HiDPI != nil {
			cfg.Zoom.HiDPI = *z.HiDPI
		}
		if z.WidthThreshold != nil {
			cfg.Zoom.WidthThreshold = *z.WidthThreshold
		}
		if z.HeightThreshold != nil {
			cfg.Zoom.HeightThreshold = *z.HeightThreshold
		}
		if z.OverrideCustom != nil {
			cfg.Zoom.OverrideCustom = *z.OverrideCustom
		}
	}
	if raw.Displays != nil && raw.Displays.Source != nil {
		cfg.Displays.Source = *raw.Displays.Source
	}
	if raw.ResyncInterval != nil {
		cfg.ResyncInterval = *raw.ResyncInterval
	}
	if l := raw.Logging; l != nil {
		if l.Level != nil {
			cfg.Logging.Level = *l.Level
		}
		if l.File != nil {
			cfg.Logging.File = *l.File
		}
	}

	return cfg
}
