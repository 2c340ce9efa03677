// Package config loads document engine settings from TOML with environment overrides.
//
// Precedence, lowest first: built-in defaults, the TOML file, VISKETCH_* variables
// (e.g. VISKETCH_GRID_CELL_SIZE, VISKETCH_HISTORY_LIMIT, VISKETCH_LOG_LEVEL).
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/kelseyhightower/envconfig"

	"github.com/lixenwraith/vi-sketch/errors"
	"github.com/lixenwraith/vi-sketch/parameter"
	"github.com/lixenwraith/vi-sketch/vmath"
)

// EnvPrefix namespaces environment overrides
const EnvPrefix = "VISKETCH"

type Config struct {
	Grid     GridConfig     `toml:"grid" envconfig:"GRID"`
	Pick     PickConfig     `toml:"pick" envconfig:"PICK"`
	Viewport ViewportConfig `toml:"viewport" envconfig:"VIEWPORT"`
	History  HistoryConfig  `toml:"history" envconfig:"HISTORY"`
	Audio    AudioConfig    `toml:"audio" envconfig:"AUDIO"`
	Log      LogConfig      `toml:"log" envconfig:"LOG"`
}

// GridConfig sizes spatial index buckets, in screen units
type GridConfig struct {
	CellSize float64 `toml:"cell_size" envconfig:"CELL_SIZE"`
}

// PickConfig sets the hit-test tolerance, in screen units
type PickConfig struct {
	Radius float64 `toml:"radius" envconfig:"RADIUS"`
}

// ViewportConfig is the initial virtual-to-screen mapping
type ViewportConfig struct {
	Width   float64 `toml:"width" envconfig:"WIDTH"`
	Height  float64 `toml:"height" envconfig:"HEIGHT"`
	Scale   float64 `toml:"scale" envconfig:"SCALE"`
	OffsetX float64 `toml:"offset_x" envconfig:"OFFSET_X"`
	OffsetY float64 `toml:"offset_y" envconfig:"OFFSET_Y"`
}

type HistoryConfig struct {
	// Limit caps kept transactions, 0 is unbounded
	Limit int `toml:"limit" envconfig:"LIMIT"`
}

type AudioConfig struct {
	Enabled bool `toml:"enabled" envconfig:"ENABLED"`
}

type LogConfig struct {
	Level string `toml:"level" envconfig:"LEVEL"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Grid: GridConfig{CellSize: parameter.DefaultCellSize},
		Pick: PickConfig{Radius: parameter.DefaultPickRadius},
		Viewport: ViewportConfig{
			Width:  parameter.DefaultViewportWidth,
			Height: parameter.DefaultViewportHeight,
			Scale:  parameter.DefaultViewportScale,
		},
		History: HistoryConfig{Limit: parameter.DefaultHistoryLimit},
		Audio:   AudioConfig{Enabled: false},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults, applies environment overrides and validates
// An empty path skips the file; a missing file is an error
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file %s", path)
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "environment overrides")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with
func (c *Config) Validate() error {
	switch {
	case c.Grid.CellSize <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "grid.cell_size must be positive, got %v", c.Grid.CellSize)
	case c.Pick.Radius < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "pick.radius must not be negative, got %v", c.Pick.Radius)
	case c.Pick.Radius > c.Grid.CellSize:
		// One neighbour ring must cover an exact hit
		return errors.New(errors.ErrCodeInvalidConfig, "pick.radius %v exceeds grid.cell_size %v", c.Pick.Radius, c.Grid.CellSize)
	case c.Viewport.Scale <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "viewport.scale must be positive, got %v", c.Viewport.Scale)
	case c.Viewport.Width <= 0 || c.Viewport.Height <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "viewport size must be positive, got %vx%v", c.Viewport.Width, c.Viewport.Height)
	case c.History.Limit < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "history.limit must not be negative, got %d", c.History.Limit)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "log.level")
	}
	return nil
}

// Transform returns the configured viewport mapping
func (c *Config) Transform() vmath.Transform {
	return vmath.Transform{Offset: vmath.V(c.Viewport.OffsetX, c.Viewport.OffsetY), Scale: c.Viewport.Scale}
}

// LogLevel returns the parsed log level, info when unparsable
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
