package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/termlife/internal/core"
)

const testConfig = `particle: "@"
alignment: bottom-right
workers: 3
scheduler: pool
`

// parseArgs parses args on a fresh command with the global flags and loads
// the config from an isolated home and working directory.
func parseArgs(t *testing.T, args ...string) *cobra.Command {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	path := filepath.Join(home, ".termlife", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(testConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := &cobra.Command{Use: "termlife"}
	addGlobalFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v) failed: %v", args, err)
	}
	return cmd
}

func TestLoadConfigFlags(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		alignment core.Alignment
		particle  rune
		workers   int
		scheduler string
	}{
		{"no flags keep config", nil, core.AlignBottomRight, '@', 3, "pool"},
		{"unknown alignment keeps config", []string{"-a", "diagonal"}, core.AlignBottomRight, '@', 3, "pool"},
		{"alignment none keeps config", []string{"-a", "none"}, core.AlignBottomRight, '@', 3, "pool"},
		{"alignment keyword", []string{"-a", "top-left"}, core.AlignTopLeft, '@', 3, "pool"},
		{"particle keeps first rune", []string{"-p", "ab"}, core.AlignBottomRight, 'a', 3, "pool"},
		{"workers override", []string{"--workers", "5"}, core.AlignBottomRight, '@', 5, "pool"},
		{"scheduler override", []string{"--scheduler", "spawn"}, core.AlignBottomRight, '@', 3, "spawn"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := loadConfig(parseArgs(t, tc.args...))

			if cfg.AlignmentValue() != tc.alignment {
				t.Errorf("AlignmentValue() = %v, expected %v", cfg.AlignmentValue(), tc.alignment)
			}
			if cfg.ParticleRune() != tc.particle {
				t.Errorf("ParticleRune() = %q, expected %q", cfg.ParticleRune(), tc.particle)
			}
			if cfg.Workers != tc.workers {
				t.Errorf("Workers = %d, expected %d", cfg.Workers, tc.workers)
			}
			if cfg.Scheduler != tc.scheduler {
				t.Errorf("Scheduler = %q, expected %q", cfg.Scheduler, tc.scheduler)
			}
		})
	}
}

func TestLoadConfigVerbose(t *testing.T) {
	cfg := loadConfig(parseArgs(t, "-v"))
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, expected debug", cfg.LogLevel)
	}

	cfg = loadConfig(parseArgs(t))
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, expected info", cfg.LogLevel)
	}
}
