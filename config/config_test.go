package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/vi-sketch/errors"
)

func TestDefault_Valid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vi-sketch.toml")
	data := `
[grid]
cell_size = 8.0

[history]
limit = 10

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("VISKETCH_HISTORY_LIMIT", "42")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Grid.CellSize != 8 {
		t.Errorf("CellSize = %v, want 8 from file", cfg.Grid.CellSize)
	}
	if cfg.History.Limit != 42 {
		t.Errorf("Limit = %v, want 42 from env", cfg.History.Limit)
	}
	if cfg.Viewport.Width != Default().Viewport.Width {
		t.Errorf("unset field lost its default: %v", cfg.Viewport.Width)
	}
	if cfg.LogLevel().String() != "debug" {
		t.Errorf("LogLevel() = %v", cfg.LogLevel())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load(missing) = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero cell", func(c *Config) { c.Grid.CellSize = 0 }},
		{"radius over cell", func(c *Config) { c.Pick.Radius = c.Grid.CellSize + 1 }},
		{"zero scale", func(c *Config) { c.Viewport.Scale = 0 }},
		{"negative history", func(c *Config) { c.History.Limit = -1 }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			if err := c.Validate(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() = %v, want INVALID_CONFIG", err)
			}
		})
	}
}
