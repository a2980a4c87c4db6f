package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/termlife/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagServeSeed   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the termlife SSH viewer",
	Long: `Start an SSH server that shows a simulation to everyone who connects.

Each SSH connection gets its own run of the configured seed on a canvas
sized to the client's terminal. Finished runs are recorded in the history
database with the SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.termlife/host_key

Examples:
  termlife serve                           # Listen on :23234 with auto-generated key
  termlife serve --ssh :2222               # Listen on port 2222
  termlife serve --seed gosper-gun         # Show the glider gun
  termlife serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 30*time.Minute, "Idle time before disconnecting")
	serveCmd.Flags().StringVar(&flagServeSeed, "seed", "r-pentomino", "Built-in pattern ID or pattern file to show")
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg := loadConfig(cmd)
	logger := newLogger(cfg)

	flags := cmd.Flags()
	if flags.Changed("ssh") {
		cfg.SSH.Address = flagSSHAddr
	}
	if flags.Changed("host-key") {
		cfg.SSH.HostKey = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		cfg.SSH.IdleTimeout = flagIdleTimeout
	}
	if flags.Changed("seed") {
		cfg.SSH.Seed = flagServeSeed
	}

	serverCfg := tui.SSHServerConfig{
		Address:     cfg.SSH.Address,
		HostKeyPath: cfg.SSH.HostKey,
		DBPath:      cfg.DB,
		IdleTimeout: cfg.SSH.IdleTimeout,
		Seed:        cfg.SSH.Seed,
		Alignment:   cfg.AlignmentValue(),
		Runtime:     cfg.Runtime(0, 0),
		Display: tui.Options{
			Particle: cfg.ParticleRune(),
			Color:    cfg.ColorValue(),
			Refresh:  cfg.Refresh,
			Timing:   cfg.Timing,
		},
		Logger: logger.WithPrefix("termlife-ssh"),
	}

	server, err := tui.NewSSHServer(serverCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting termlife SSH server on %s\n", server.Addr())
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
