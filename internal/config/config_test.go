package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/dpizoom/internal/zoom"
)

func writeConfig(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))
	return path
}

func TestDefaultConfig_ValidAndMatchesPolicy(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, zoom.DefaultPolicy(), cfg.Policy())
	assert.Equal(t, DisplaySourceBrowser, cfg.Displays.Source)
	assert.False(t, cfg.Zoom.OverrideCustom)
	assert.Zero(t, cfg.ResyncInterval)
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, res.File)
	assert.Equal(t, DefaultConfig(), res.Config)
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, "# empty")

	res, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, path, res.File)
	assert.Equal(t, DefaultConfig(), res.Config)
}

func TestLoadFromPath_PartialOverride(t *testing.T) {
	path := writeConfig(t,
		"zoom:",
		"  hidpi: 1.25",
		"  width_threshold: 3000",
		"  override_custom: true",
		"displays:",
		"  source: x11",
		"resync_interval: 30s",
		"logging:",
		"  level: debug",
	)

	res, err := LoadFromPath(path)
	require.NoError(t, err)

	cfg := res.Config
	assert.Equal(t, 1.0, cfg.Zoom.Normal)
	assert.Equal(t, 1.25, cfg.Zoom.HiDPI)
	assert.Equal(t, 3000, cfg.Zoom.WidthThreshold)
	assert.Equal(t, zoom.DefaultThreshold, cfg.Zoom.HeightThreshold)
	assert.True(t, cfg.Zoom.OverrideCustom)
	assert.Equal(t, DisplaySourceX11, cfg.Displays.Source)
	assert.Equal(t, 30*time.Second, cfg.ResyncInterval)
	assert.Equal(t, "debug", cfg.Logging.Level)

	policy := cfg.Policy()
	assert.Equal(t, zoom.Factor(1.25), policy.HiDPI)
	assert.Equal(t, 3000, policy.WidthThreshold)

	src, ok := res.Sources["zoom.hidpi"]
	require.True(t, ok)
	assert.Equal(t, 2, src.Line)
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := writeConfig(t, "zoom:", "  hidpy: 1.5")

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hidpy")
	assert.Contains(t, err.Error(), path)
}

func TestLoadFromPath_ValidationErrorHasSourceContext(t *testing.T) {
	path := writeConfig(t,
		"zoom:",
		"  normal: 1.0",
		"  width_threshold: -5",
	)

	_, err := LoadFromPath(path)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "zoom.width_threshold", verr.Path)
	assert.Equal(t, path, verr.Source.File)
	assert.Equal(t, 3, verr.Source.Line)
	assert.True(t, strings.HasPrefix(err.Error(), path+":3:"), err.Error())
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"zero normal", func(c *Config) { c.Zoom.Normal = 0 }, "zoom.normal"},
		{"negative hidpi", func(c *Config) { c.Zoom.HiDPI = -1 }, "zoom.hidpi"},
		{"equal factors", func(c *Config) { c.Zoom.HiDPI = c.Zoom.Normal }, "zoom.hidpi"},
		{"zero height threshold", func(c *Config) { c.Zoom.HeightThreshold = 0 }, "zoom.height_threshold"},
		{"unknown source", func(c *Config) { c.Displays.Source = "wayland" }, "displays.source"},
		{"negative interval", func(c *Config) { c.ResyncInterval = -time.Second }, "resync_interval"},
		{"unknown level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.path, verr.Path)
		})
	}
}

func TestSave_RoundTripsAndRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Zoom.HiDPI = 2.0
	cfg.Displays.Source = DisplaySourceX11
	cfg.ResyncInterval = time.Minute
	require.NoError(t, Save(cfg, path, false))

	res, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, res.Config)

	err = Save(cfg, path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, Save(DefaultConfig(), path, true))
	res, err = LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), res.Config)
}

func TestWatcher_ReloadsValidChanges(t *testing.T) {
	path := writeConfig(t, "zoom:", "  hidpi: 1.5")

	var mu sync.Mutex
	var got []*Config
	w, err := NewWatcher(path, nil, func(c *Config) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, c)
	})
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	// Invalid edit is ignored.
	require.NoError(t, os.WriteFile(path, []byte("zoom:\n  hidpi: -1\n"), 0644))
	require.NoError(t, os.WriteFile(path, []byte("zoom:\n  hidpi: 1.75\n"), 0644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) > 0 && got[len(got)-1].Zoom.HiDPI == 1.75
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	for _, c := range got {
		assert.NoError(t, c.Validate())
	}
}
