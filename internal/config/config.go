// Package config loads host settings for ls-nebula from YAML with
// environment overrides. The sky engine itself has no tunables; everything
// here concerns how hosts drive and present it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

const (
	DefaultFPS = 60
	MinFPS     = 1
	MaxFPS     = 240
)

// Config holds all host settings.
type Config struct {
	FPS      int    `yaml:"fps"`
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
	Seed     int64  `yaml:"seed"` // 0 = seed from the clock

	Window   WindowConfig   `yaml:"window"`
	Terminal TerminalConfig `yaml:"terminal"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

// WindowConfig configures the ebiten window host.
type WindowConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Title  string  `yaml:"title"`
	Scale  float64 `yaml:"scale"` // device pixels per engine pixel
}

// TerminalConfig maps terminal half-block pixels to engine pixels. Each cell
// is one pixel wide and two pixels tall.
type TerminalConfig struct {
	PixelSize int `yaml:"pixel_size"`
}

// SnapshotConfig holds headless render defaults.
type SnapshotConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Frames int `yaml:"frames"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		FPS:      DefaultFPS,
		LogLevel: "info",
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "ls-nebula",
			Scale:  1,
		},
		Terminal: TerminalConfig{
			PixelSize: 8,
		},
		Snapshot: SnapshotConfig{
			Width:  800,
			Height: 600,
			Frames: 120,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/ls-nebula/config.yaml, falling back
// to the user config dir.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			return "config.yaml"
		}
	}
	return filepath.Join(dir, "ls-nebula", "config.yaml")
}

// Load reads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// defaults
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.Clamp()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes configuration as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies LS_NEBULA_* environment variables.
// Unparseable numbers are ignored.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("LS_NEBULA_FPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.FPS = n
		}
	}
	if v := os.Getenv("LS_NEBULA_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LS_NEBULA_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = n
		}
	}
}

// Clamp forces FPS into [MinFPS, MaxFPS] and restores defaults for
// non-positive geometry.
func (c *Config) Clamp() {
	if c.FPS < MinFPS {
		c.FPS = MinFPS
	} else if c.FPS > MaxFPS {
		c.FPS = MaxFPS
	}

	def := DefaultConfig()
	if c.Terminal.PixelSize <= 0 {
		c.Terminal.PixelSize = def.Terminal.PixelSize
	}
	if c.Window.Scale <= 0 {
		c.Window.Scale = def.Window.Scale
	}
}

// Validate checks settings Clamp cannot repair.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error", "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		return fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Snapshot.Width <= 0 || c.Snapshot.Height <= 0 {
		return fmt.Errorf("%w: snapshot size %dx%d", ErrInvalid, c.Snapshot.Width, c.Snapshot.Height)
	}
	if c.Snapshot.Frames < 1 {
		return fmt.Errorf("%w: snapshot frames %d", ErrInvalid, c.Snapshot.Frames)
	}
	return nil
}

// FrameInterval returns the tick period for the configured FPS.
func (c *Config) FrameInterval() time.Duration {
	fps := c.FPS
	if fps < MinFPS {
		fps = MinFPS
	}
	return time.Second / time.Duration(fps)
}
