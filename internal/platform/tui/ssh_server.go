package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/arcade-portal/internal/config"
)

// SSHServer serves the portal over SSH. Sessions share the tracker and
// score store; each gets its own App and Host.
type SSHServer struct {
	config config.SSHConfig
	deps   Deps
	server *ssh.Server
	logger *log.Logger
}

// NewSSHServer creates a Wish server. An empty host key path uses
// ~/.arcade/host_key, generated on first start.
func NewSSHServer(cfg config.SSHConfig, deps Deps) (*SSHServer, error) {
	logger := deps.logger()

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".arcade", "host_key")
	}
	hostKeyPath = config.ExpandHome(hostKeyPath)
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
	}

	srv := &SSHServer{config: cfg, deps: deps, logger: logger}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.closeMiddleware,
			srv.loggingMiddleware,
		),
	}
	if cfg.IdleTimeout > 0 {
		opts = append(opts, wish.WithIdleTimeout(cfg.IdleTimeout))
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}
	srv.server = server
	return srv, nil
}

type appKey struct{}

// teaHandler creates an App for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	app := NewApp(sess.Context(), s.deps, AppOptions{
		Width:  pty.Window.Width,
		Height: pty.Window.Height,
		User:   sess.User(),
	})
	sess.Context().SetValue(appKey{}, app)
	return app, []tea.ProgramOption{tea.WithAltScreen()}
}

// closeMiddleware ends the session's game once its program has exited.
// Disconnects and idle timeouts kill the program without a keypress.
func (s *SSHServer) closeMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		next(sess)
		if app, ok := sess.Context().Value(appKey{}).(*App); ok {
			app.Close()
		}
	}
}

// loggingMiddleware logs session start and end.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started", "user", sess.User(), "remote", sess.RemoteAddr().String())
		next(sess)
		s.logger.Info("session ended", "user", sess.User(), "remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second))
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
