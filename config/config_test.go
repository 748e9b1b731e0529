package config

import (
	"os"
	"path/filepath"
	"testing"

	"tally.dev/tally/platform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Gestures.Swipe.Threshold = 50
	cfg.Gestures.Sheet.SnapPoints = []float32{40, 90}
	cfg.Platform.Force = "ios"
	cfg.Log.Level = "debug"

	path := filepath.Join(t.TempDir(), "tally.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.InDelta(t, 50, got.Gestures.Swipe.Threshold, 0.001)
	assert.InDelta(t, 120, got.Gestures.Swipe.MaxOffset, 0.001)
	assert.InDelta(t, 0.4, got.Gestures.Pull.Damping, 0.001)
	assert.Equal(t, []float32{40, 90}, got.Gestures.Sheet.SnapPoints)
	assert.Equal(t, "ios", got.Platform.Force)
	assert.Equal(t, "debug", got.Log.Level)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.InDelta(t, 60, cfg.Gestures.Swipe.Threshold, 0.001)
	assert.InDelta(t, 120, cfg.Gestures.Swipe.MaxOffset, 0.001)
	assert.InDelta(t, 80, cfg.Gestures.Pull.Threshold, 0.001)
	assert.InDelta(t, 0.4, cfg.Gestures.Pull.Damping, 0.001)
	assert.InDelta(t, 120, cfg.Gestures.Pull.MaxPull, 0.001)
	assert.InDelta(t, 50, cfg.Gestures.Pull.Spinner, 0.001)
	assert.InDelta(t, 100, cfg.Gestures.Sheet.DismissThreshold, 0.001)
	assert.Equal(t, []float32{60}, cfg.Gestures.Sheet.SnapPoints)
	assert.Empty(t, cfg.Platform.Force)
	assert.True(t, cfg.Platform.MouseEmulation)
	assert.Equal(t, "info", cfg.Log.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.yaml")
	data := "gestures:\n  pull:\n    threshold: 90\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 90, cfg.Gestures.Pull.Threshold, 0.001)
	assert.InDelta(t, 120, cfg.Gestures.Pull.MaxPull, 0.001)
	assert.InDelta(t, 60, cfg.Gestures.Swipe.Threshold, 0.001)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gestures: [\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *Config)
	}{
		{"swipe threshold zero", func(cfg *Config) { cfg.Gestures.Swipe.Threshold = 0 }},
		{"swipe threshold above max", func(cfg *Config) { cfg.Gestures.Swipe.Threshold = 130 }},
		{"pull damping zero", func(cfg *Config) { cfg.Gestures.Pull.Damping = 0 }},
		{"pull damping above one", func(cfg *Config) { cfg.Gestures.Pull.Damping = 1.5 }},
		{"pull threshold above max", func(cfg *Config) { cfg.Gestures.Pull.Threshold = 200 }},
		{"pull spinner negative", func(cfg *Config) { cfg.Gestures.Pull.Spinner = -1 }},
		{"sheet threshold zero", func(cfg *Config) { cfg.Gestures.Sheet.DismissThreshold = 0 }},
		{"sheet snap point above 100", func(cfg *Config) { cfg.Gestures.Sheet.SnapPoints = []float32{60, 120} }},
		{"unknown platform", func(cfg *Config) { cfg.Platform.Force = "beos" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gestures:\n  swipe:\n    threshold: -3\n"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.yaml")
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "max_offset: 120")
	assert.Contains(t, contents, "damping: 0.4")
	assert.Contains(t, contents, "snap_points: [60]")
	assert.Contains(t, contents, "mouse_emulation: true")
	assert.NotContains(t, contents, "force:")
}

func TestConverters(t *testing.T) {
	cfg := Default()
	cfg.Gestures.Sheet.SnapPoints = []float32{30, 75}

	sw := cfg.SwipeConfig()
	assert.InDelta(t, 60, sw.Threshold, 0.001)
	assert.Nil(t, sw.OnSwipeLeft)

	pl := cfg.PullConfig()
	assert.InDelta(t, 50, pl.SpinnerDistance, 0.001)
	assert.InDelta(t, 0.4, pl.Damping, 0.001)

	sh := cfg.SheetConfig()
	assert.Equal(t, []float32{30, 75}, sh.SnapPoints)
	// The converted snap points don't alias the configuration.
	sh.SnapPoints[0] = 10
	assert.Equal(t, []float32{30, 75}, cfg.Gestures.Sheet.SnapPoints)
}

func TestCapabilitiesForced(t *testing.T) {
	cfg := Default()
	cfg.Platform.Force = "android"
	cfg.Platform.MouseEmulation = false

	caps, err := cfg.Capabilities()
	require.NoError(t, err)
	assert.Equal(t, platform.Android, caps.OS)
	assert.True(t, caps.Touch)
	assert.False(t, caps.MouseEmulation)
}
