// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/grandfishing/components"
	"github.com/pthm-cable/grandfishing/systems"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Timing    TimingConfig    `yaml:"timing"`
	Random    RandomConfig    `yaml:"random"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// WorldConfig holds the grid and fleet parameters. These are fixed for the
// lifetime of a run.
type WorldConfig struct {
	Width        uint64 `yaml:"width"`
	Height       uint64 `yaml:"height"`
	Ships        int    `yaml:"ships"`
	WinThreshold uint64 `yaml:"win_threshold"`
	CellPitch    int    `yaml:"cell_pitch"` // pixels per cell at zoom 1
}

// TimingConfig holds the fixed-timestep parameters.
type TimingConfig struct {
	TicksPerSecond int    `yaml:"ticks_per_second"`
	MaxTicks       uint64 `yaml:"max_ticks"` // 0 = unbounded
}

// RandomConfig holds the inclusive range of every random draw.
type RandomConfig struct {
	FishingCountdown systems.IntRange `yaml:"fishing_countdown"`
	MovementOffset   systems.IntRange `yaml:"movement_offset"`
	Catch            systems.IntRange `yaml:"catch"`
	NativeFish       systems.IntRange `yaml:"native_fish"`
	CellTTL          systems.IntRange `yaml:"cell_ttl"`
}

// Ranges converts the section into generator ranges.
func (r RandomConfig) Ranges() systems.Ranges {
	return systems.Ranges{
		FishingCountdown: r.FishingCountdown,
		MovementOffset:   r.MovementOffset,
		Catch:            r.Catch,
		NativeFish:       r.NativeFish,
		CellTTL:          r.CellTTL,
	}
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         uint64 `yaml:"stats_window"` // ticks per window
	PerfCollectorWindow int    `yaml:"perf_collector_window"`
	LogStats            bool   `yaml:"log_stats"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Cells         uint64        // World.Width * World.Height
	PositionBound uint64        // Cells - 1
	TickDuration  time.Duration // 1s / Timing.TicksPerSecond
	ExpiryReserve int           // per-slot capacity of the expiry ring
	ScreenW32     float32       // Screen.Width as float32
	ScreenH32     float32       // Screen.Height as float32
	CellPitch32   float32       // World.CellPitch as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults with derived values filled in.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects values the simulation core would panic on.
func (c *Config) Validate() error {
	var errs []error

	w, h := c.World.Width, c.World.Height
	switch {
	case w == 0 || h == 0:
		errs = append(errs, fmt.Errorf("world: grid dimensions must be non-zero, got %dx%d", w, h))
	case h > math.MaxUint64/w || w*h-1 > components.MaxPosition:
		errs = append(errs, fmt.Errorf("world: %dx%d grid exceeds %d addressable cells", w, h, uint64(components.MaxPosition)+1))
	}
	if c.World.Ships < 0 {
		errs = append(errs, fmt.Errorf("world: ships must not be negative, got %d", c.World.Ships))
	}
	if c.World.WinThreshold == 0 || c.World.WinThreshold > components.MaxCatch {
		errs = append(errs, fmt.Errorf("world: win_threshold %d outside [1, %d]", c.World.WinThreshold, components.MaxCatch))
	}
	if c.World.CellPitch <= 0 {
		errs = append(errs, fmt.Errorf("world: cell_pitch must be positive, got %d", c.World.CellPitch))
	}
	if c.Timing.TicksPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("timing: ticks_per_second must be positive, got %d", c.Timing.TicksPerSecond))
	}
	if err := c.Random.Ranges().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("random: %w", err))
	}
	if c.Telemetry.StatsWindow == 0 {
		errs = append(errs, errors.New("telemetry: stats_window must be positive"))
	}

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Cells = c.World.Width * c.World.Height
	c.Derived.PositionBound = c.Derived.Cells - 1
	c.Derived.TickDuration = time.Second / time.Duration(c.Timing.TicksPerSecond)
	c.Derived.ExpiryReserve = systems.ReservePerSlot(c.World.Ships)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.CellPitch32 = float32(c.World.CellPitch)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
