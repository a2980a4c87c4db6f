// Package config provides YAML-based application configuration for
// termlife: display settings, engine tuning, storage and the SSH server.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/termlife/internal/core"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config contains all configuration for termlife.
type Config struct {
	Particle    string        `yaml:"particle"`     // Symbol for live cells
	Alignment   string        `yaml:"alignment"`    // Seed placement keyword
	Workers     int           `yaml:"workers"`      // 0 = runtime.NumCPU()
	Scheduler   string        `yaml:"scheduler"`    // "spawn" or "pool"
	Refresh     time.Duration `yaml:"refresh"`      // Delay between generations
	Timing      bool          `yaml:"timing"`       // Show step timing
	Color       string        `yaml:"color"`        // Live cell colour
	PatternsDir string        `yaml:"patterns_dir"` // Extra pattern files
	DB          string        `yaml:"db"`           // Run history database
	LogLevel    string        `yaml:"log_level"`
	SSH         SSHConfig     `yaml:"ssh"`
}

// SSHConfig defines the SSH viewer settings.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"` // Auto-generated when empty
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	Seed        string        `yaml:"seed"` // Built-in pattern ID or file path
}

// Validate normalises the configuration in place. Out-of-range numbers are
// reset to defaults and an unknown alignment keyword silently keeps the
// default; an unknown scheduler, colour or log level is an error.
func (c *Config) Validate() error {
	def := Default()

	if c.Particle == "" {
		c.Particle = def.Particle
	}
	if utf8.RuneCountInString(c.Particle) > 1 {
		r, _ := utf8.DecodeRuneInString(c.Particle)
		c.Particle = string(r)
	}

	if _, ok := core.ParseAlignmentKeyword(c.Alignment); !ok {
		c.Alignment = def.Alignment
	}

	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}

	if c.Scheduler == "" {
		c.Scheduler = def.Scheduler
	}
	if _, err := core.ParseSchedulerKind(c.Scheduler); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if c.Refresh <= 0 {
		c.Refresh = def.Refresh
	}

	if c.Color == "" {
		c.Color = def.Color
	}
	if _, ok := core.ParseColor(c.Color); !ok {
		return fmt.Errorf("%w: unknown color %q", ErrInvalidConfig, c.Color)
	}

	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if c.SSH.Address == "" {
		c.SSH.Address = def.SSH.Address
	}
	if c.SSH.IdleTimeout <= 0 {
		c.SSH.IdleTimeout = def.SSH.IdleTimeout
	}
	if c.SSH.Seed == "" {
		c.SSH.Seed = def.SSH.Seed
	}

	return nil
}

// AlignmentValue returns the parsed alignment, center when the keyword is
// unknown or "none".
func (c Config) AlignmentValue() core.Alignment {
	a, _ := core.ParseAlignmentKeyword(c.Alignment)
	return a
}

// ParticleRune returns the live cell symbol.
func (c Config) ParticleRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Particle)
	if r == utf8.RuneError {
		return '*'
	}
	return r
}

// ColorValue returns the parsed live cell colour.
func (c Config) ColorValue() core.Color {
	col, _ := core.ParseColor(c.Color)
	return col
}

// Level returns the parsed log level, info when unknown.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Runtime builds the engine settings for a screen of the given size.
func (c Config) Runtime(screenW, screenH int) core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.ScreenW = screenW
	rc.ScreenH = screenH
	rc.Workers = c.Workers
	rc.Scheduler = core.SchedulerKind(c.Scheduler)
	if c.Refresh > 0 {
		rc.TickRate = core.Max(1, int(time.Second/c.Refresh))
	}
	return rc
}
