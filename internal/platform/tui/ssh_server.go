package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/termlife/internal/core"
	"github.com/vovakirdan/termlife/internal/registry"
	"github.com/vovakirdan/termlife/internal/seed"
	"github.com/vovakirdan/termlife/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.termlife/host_key.
	HostKeyPath string

	// DBPath is the path to the run history database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Seed is the built-in pattern ID or pattern file every session runs.
	Seed string

	// Alignment places the seed on each session's canvas.
	Alignment core.Alignment

	// Runtime carries the worker count and scheduler kind.
	Runtime core.RuntimeConfig

	// Display controls symbols, colour and refresh rate.
	Display Options

	// Logger receives server and session events. A default is created when nil.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.termlife/runs.db",
		IdleTimeout: 30 * time.Minute,
		Seed:        "r-pentomino",
		Alignment:   core.AlignCenter,
		Runtime:     core.DefaultConfig(),
		Display:     Options{Particle: '*', Color: core.ColorGreen, Refresh: DefaultRefresh},
	}
}

// SSHServer wraps a Wish SSH server that gives every session its own
// simulation of the configured seed.
type SSHServer struct {
	config  SSHServerConfig
	pattern seed.Pattern
	server  *ssh.Server
	store   *storage.Store
	logger  *log.Logger
}

// sessionKey stores a session's run in its ssh.Context.
type sessionKey struct{}

// sessionRun is the simulation owned by one SSH session.
type sessionRun struct {
	engine    *core.Engine
	metrics   *core.Metrics
	tracker   *Tracker
	canvas    int
	workers   int
	scheduler core.SchedulerKind
}

// NewSSHServer creates a new SSH server with the given configuration.
// The seed is resolved once here so a bad pattern fails at startup.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "termlife-ssh",
		})
	}

	pattern, err := registry.Resolve(cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("cannot load seed %q: %w", cfg.Seed, err)
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open run history database", "error", err)
		// Continue without storage
		store = nil
	}

	srv := &SSHServer{
		config:  cfg,
		pattern: pattern,
		store:   store,
		logger:  logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".termlife", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler builds a simulation sized to the session's PTY.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	run, err := s.newSessionRun(pty.Window.Width, pty.Window.Height)
	if err != nil {
		s.logger.Error("cannot start simulation", "user", sshSession.User(), "error", err)
		return nil, nil
	}
	sshSession.Context().SetValue(sessionKey{}, run)

	opts := s.config.Display
	opts.Title = s.pattern.Name
	opts.Tracker = run.tracker
	model := NewModel(run.engine, run.metrics, opts)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// newSessionRun embeds the seed in a square canvas that fits cols x rows.
func (s *SSHServer) newSessionRun(cols, rows int) (*sessionRun, error) {
	rc := s.config.Runtime
	rc.ScreenW, rc.ScreenH = CanvasFor(cols, rows, StatusLines)
	size := rc.CanvasSize()

	p, err := s.pattern.Embed(size, size, s.config.Alignment)
	if err != nil {
		return nil, err
	}

	metrics := core.NewMetrics()
	engine, err := rc.NewEngine(p.Grid, metrics)
	if err != nil {
		return nil, err
	}

	return &sessionRun{
		engine:    engine,
		metrics:   metrics,
		tracker:   &Tracker{},
		canvas:    size,
		workers:   engine.Workers(),
		scheduler: rc.Scheduler,
	}, nil
}

// loggingMiddleware logs SSH session events and records each finished run.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)

		if run, ok := sshSession.Context().Value(sessionKey{}).(*sessionRun); ok {
			s.finishRun(sshSession.User(), run)
		}
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// finishRun releases the session's engine and saves the run.
func (s *SSHServer) finishRun(user string, run *sessionRun) {
	run.engine.Close()
	result := run.tracker.Result()

	s.logger.Info("run finished",
		"user", user,
		"seed", s.pattern.Source,
		"generations", result.Generations,
		"converged", result.Converged,
	)

	if s.store == nil {
		return
	}
	_, err := s.store.SaveRun(storage.Run{
		Seed:        s.pattern.Source,
		Height:      run.canvas,
		Width:       run.canvas,
		Workers:     run.workers,
		Scheduler:   string(run.scheduler),
		Generations: result.Generations,
		Converged:   result.Converged,
		AvgStep:     result.AvgStep,
		User:        user,
	})
	if err != nil {
		s.logger.Warn("could not save run", "error", err)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "seed", s.pattern.Name)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
			errCh <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down...")
		return s.Shutdown()
	case err := <-errCh:
		if s.store != nil {
			s.store.Close()
		}
		return err
	}
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)

	if s.store != nil {
		s.store.Close()
	}

	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
