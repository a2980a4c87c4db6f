package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/termlife.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration, used when the embedded
// YAML cannot be parsed.
func Default() Config {
	return Config{
		Particle:    "*",
		Alignment:   "center",
		Workers:     0,
		Scheduler:   "spawn",
		Refresh:     40 * time.Millisecond,
		Timing:      false,
		Color:       "green",
		PatternsDir: "~/.termlife/patterns",
		DB:          "~/.termlife/runs.db",
		LogLevel:    "info",
		SSH: SSHConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
			Seed:        "r-pentomino",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
