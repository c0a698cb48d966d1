package server

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/tnguyen21/navshell/internal/app"
	"github.com/tnguyen21/navshell/internal/config"
)

// HostKeyName is the file name of the server's host key in HostKeyDir.
const HostKeyName = "navshell_host_key"

// Server wraps a wish SSH server that serves one navshell per session.
type Server struct {
	config *config.Config
	logger *log.Logger
	wish   *ssh.Server

	mu       sync.Mutex
	sessions map[string]*app.Model
}

// sessionIDKey stores the session id in the ssh context.
type sessionIDKey struct{}

// New creates a Server configured from cfg.
func New(cfg *config.Config, logger *log.Logger) (*Server, error) {
	srv := &Server{config: cfg, logger: logger, sessions: make(map[string]*app.Model)}

	s, err := wish.NewServer(
		wish.WithAddress(fmt.Sprintf(":%d", cfg.Port)),
		wish.WithHostKeyPath(filepath.Join(cfg.HostKeyDir, HostKeyName)),
		wish.WithPublicKeyAuth(publicKeyHandler),
		wish.WithMiddleware(
			srv.endSession,
			bubbletea.Middleware(srv.teaHandler),
			activeterm.Middleware(),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating wish server: %w", err)
	}
	srv.wish = s
	return srv, nil
}

// teaHandler builds the model for one session. Every session gets its own
// navigation state; the session id tags its log lines.
func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	id := uuid.NewString()
	logger := s.logger.With("session", id, "user", sess.User())
	logger.Info("session started", "remote", sess.RemoteAddr().String())

	model := app.New(*s.config, logger)
	sess.Context().SetValue(sessionIDKey{}, id)
	s.mu.Lock()
	s.sessions[id] = model
	s.mu.Unlock()

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// endSession closes the session's model. The bubbletea middleware calls it
// once the program has exited, so the model is no longer in use.
func (s *Server) endSession(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		if id, ok := sess.Context().Value(sessionIDKey{}).(string); ok {
			s.mu.Lock()
			model := s.sessions[id]
			delete(s.sessions, id)
			s.mu.Unlock()
			if model != nil {
				model.Close()
				s.logger.Info("session ended", "session", id)
			}
		}
		next(sess)
	}
}

// Sessions returns the number of sessions with a live model.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Start begins listening for SSH connections. It blocks until the server
// is shut down or encounters a fatal error. Returns nil on graceful shutdown.
func (s *Server) Start() error {
	if err := s.wish.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.wish.Shutdown(ctx)
}

// publicKeyHandler accepts all SSH public keys. navshell is meant for
// local/VPS use behind a firewall.
func publicKeyHandler(_ ssh.Context, _ ssh.PublicKey) bool {
	return true
}
