package config

import (
	"errors"
	"fmt"
	"os"

	"tally.dev/tally/gesture"
	"tally.dev/tally/platform"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by all validation errors.
var ErrInvalid = errors.New("invalid configuration")

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Gestures GesturesConfig `yaml:"gestures"`
	Platform PlatformConfig `yaml:"platform"`
	Log      LogConfig      `yaml:"log"`
}

type GesturesConfig struct {
	Swipe SwipeConfig `yaml:"swipe"`
	Pull  PullConfig  `yaml:"pull"`
	Sheet SheetConfig `yaml:"sheet"`
}

// SwipeConfig tunes swipe-to-reveal rows. Distances are in pixels.
type SwipeConfig struct {
	Threshold float32 `yaml:"threshold"`
	MaxOffset float32 `yaml:"max_offset"`
}

// PullConfig tunes pull-to-refresh. Threshold, MaxPull and Spinner are in
// damped pixels.
type PullConfig struct {
	Threshold float32 `yaml:"threshold"`
	Damping   float32 `yaml:"damping"`
	MaxPull   float32 `yaml:"max_pull"`
	Spinner   float32 `yaml:"spinner"`
}

type SheetConfig struct {
	DismissThreshold float32   `yaml:"dismiss_threshold"`
	SnapPoints       []float32 `yaml:"snap_points,flow"`
}

type PlatformConfig struct {
	// Force overrides platform detection: "ios", "android" or "desktop".
	Force          string `yaml:"force,omitempty"`
	MouseEmulation bool   `yaml:"mouse_emulation"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Gestures: GesturesConfig{
			Swipe: SwipeConfig{
				Threshold: gesture.DefaultSwipeThreshold,
				MaxOffset: gesture.DefaultSwipeMaxOffset,
			},
			Pull: PullConfig{
				Threshold: gesture.DefaultPullThreshold,
				Damping:   gesture.DefaultPullDamping,
				MaxPull:   gesture.DefaultPullMax,
				Spinner:   gesture.DefaultPullSpinner,
			},
			Sheet: SheetConfig{
				DismissThreshold: gesture.DefaultSheetDismissThreshold,
				SnapPoints:       []float32{gesture.DefaultSnapPoint},
			},
		},
		Platform: PlatformConfig{
			MouseEmulation: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a tally.yaml file from disk. Keys missing from the file keep
// their default values. A file that doesn't exist yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks the configuration for values the gesture layer can't work
// with.
func (cfg *Config) Validate() error {
	sw := cfg.Gestures.Swipe
	if sw.Threshold <= 0 || sw.MaxOffset <= 0 {
		return invalid("swipe threshold and max_offset must be positive")
	}
	if sw.Threshold > sw.MaxOffset {
		return invalid("swipe threshold %v exceeds max_offset %v", sw.Threshold, sw.MaxOffset)
	}

	pl := cfg.Gestures.Pull
	if pl.Threshold <= 0 || pl.MaxPull <= 0 || pl.Spinner <= 0 {
		return invalid("pull threshold, max_pull and spinner must be positive")
	}
	if pl.Damping <= 0 || pl.Damping > 1 {
		return invalid("pull damping %v not in (0, 1]", pl.Damping)
	}
	if pl.Threshold > pl.MaxPull {
		return invalid("pull threshold %v exceeds max_pull %v", pl.Threshold, pl.MaxPull)
	}

	sh := cfg.Gestures.Sheet
	if sh.DismissThreshold <= 0 {
		return invalid("sheet dismiss_threshold must be positive")
	}
	for _, p := range sh.SnapPoints {
		if p <= 0 || p > 100 {
			return invalid("sheet snap point %v not in (0, 100]", p)
		}
	}

	if cfg.Platform.Force != "" {
		if _, err := platform.Parse(cfg.Platform.Force); err != nil {
			return invalid("%s", err)
		}
	}
	return nil
}

// Capabilities detects the platform, honouring the configured overrides.
func (cfg *Config) Capabilities() (platform.Capabilities, error) {
	return platform.Detect(cfg.Platform.Force, cfg.Platform.MouseEmulation)
}

// SwipeConfig returns the swipe tuning without any actions.
func (cfg *Config) SwipeConfig() gesture.SwipeConfig {
	return gesture.SwipeConfig{
		Threshold: cfg.Gestures.Swipe.Threshold,
		MaxOffset: cfg.Gestures.Swipe.MaxOffset,
	}
}

// PullConfig returns the pull-to-refresh tuning without a refresh
// function.
func (cfg *Config) PullConfig() gesture.PullConfig {
	return gesture.PullConfig{
		Threshold:       cfg.Gestures.Pull.Threshold,
		Damping:         cfg.Gestures.Pull.Damping,
		MaxPull:         cfg.Gestures.Pull.MaxPull,
		SpinnerDistance: cfg.Gestures.Pull.Spinner,
	}
}

// SheetConfig returns the sheet tuning without callbacks.
func (cfg *Config) SheetConfig() gesture.SheetConfig {
	return gesture.SheetConfig{
		DismissThreshold: cfg.Gestures.Sheet.DismissThreshold,
		SnapPoints:       append([]float32(nil), cfg.Gestures.Sheet.SnapPoints...),
	}
}
