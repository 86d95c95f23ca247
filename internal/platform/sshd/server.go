// Package sshd serves terminity over SSH via Wish. Each connection
// gets its own driver bound to the session PTY and its own lifecycle
// manager; all sessions share one score database.
package sshd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/gdamore/tcell/v2"
	"github.com/gdamore/tcell/v2/terminfo"

	"github.com/NeoGalaxy/terminity/internal/driver"
	"github.com/NeoGalaxy/terminity/internal/game"
	"github.com/NeoGalaxy/terminity/internal/host"
	"github.com/NeoGalaxy/terminity/internal/storage"
)

// Config holds the SSH server settings.
type Config struct {
	// Address is the host:port to listen on (e.g., ":2222").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key is auto-generated at ~/.terminity/id_host.
	HostKeyPath string

	// Game is activated for every incoming session. Players can still
	// switch games from inside one.
	Game string

	// TickRate is frames per second for hosted sessions.
	TickRate int

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// Server wraps a Wish SSH server hosting terminity sessions.
type Server struct {
	config   Config
	server   *ssh.Server
	registry *game.Registry
	store    *storage.Store
	logger   *log.Logger
}

// NewServer creates an SSH server. store may be nil to run without
// score persistence.
func NewServer(cfg Config, registry *game.Registry, store *storage.Store, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}
	if !registry.Exists(cfg.Game) {
		return nil, fmt.Errorf("sshd: unknown game %q", cfg.Game)
	}

	srv := &Server{
		config:   cfg,
		registry: registry,
		store:    store,
		logger:   logger,
	}

	hostKeyPath := cfg.HostKeyPath
	switch {
	case hostKeyPath == "":
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".terminity", "id_host")
	case hostKeyPath[0] == '~':
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot expand home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, hostKeyPath[1:])
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			srv.sessionMiddleware,
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// sessionMiddleware hosts one terminity session over the SSH channel.
func (s *Server) sessionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, windows, ok := sess.Pty()
		if !ok {
			s.logger.Warn("no PTY requested", "user", sess.User())
			wish.Fatalln(sess, "terminity requires a PTY; reconnect with ssh -t")
			return
		}

		drv, err := newSessionDriver(sess, pty, windows)
		if err != nil {
			s.logger.Error("cannot bind session terminal", "user", sess.User(), "error", err)
			wish.Fatalln(sess, "unsupported terminal:", pty.Term)
			return
		}

		logger := s.logger.With("user", sess.User())
		var store host.Store
		if s.store != nil {
			store = s.store
		}
		mgr := host.NewManager(s.registry, store, logger)
		loop := host.NewLoop(drv, mgr, host.Options{
			TickRate: s.config.TickRate,
			Seed:     time.Now().UnixNano(),
		}, logger)

		if err := loop.Run(s.config.Game); err != nil {
			logger.Error("session ended with error", "error", err)
		}
		next(sess)
	}
}

// newSessionDriver builds a driver over the session's terminal,
// falling back to xterm-256color when the advertised TERM is unknown
// to the terminfo database.
func newSessionDriver(sess ssh.Session, pty ssh.Pty, windows <-chan ssh.Window) (driver.Driver, error) {
	ti, err := terminfo.LookupTerminfo(pty.Term)
	if err != nil {
		ti, err = terminfo.LookupTerminfo("xterm-256color")
		if err != nil {
			return nil, err
		}
	}
	screen, err := tcell.NewTerminfoScreenFromTtyTerminfo(newSessionTty(sess, pty, windows), ti)
	if err != nil {
		return nil, err
	}
	return driver.NewFromScreen(screen), nil
}

// loggingMiddleware logs SSH session events.
func (s *Server) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until a signal
// triggers graceful shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "game", s.config.Game)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *Server) Addr() string {
	return s.config.Address
}
