// Package ui provides the web dashboard for exploring uploaded CSV files.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/tabview/internal/session"
	"github.com/leapstack-labs/tabview/internal/ui/features/dashboard"
	"github.com/leapstack-labs/tabview/internal/ui/notifier"
	"github.com/leapstack-labs/tabview/internal/ui/router"
)

// DefaultSessionMaxAge is the lifetime of the session cookie.
const DefaultSessionMaxAge = 86400 * 30

// Server is the main UI server.
type Server struct {
	sessions     *session.Manager
	sessionStore *sessions.CookieStore
	reader       dashboard.DatasetReader
	port         int
	opts         dashboard.Options
	logger       *slog.Logger
	notifier     *notifier.Notifier
}

// Config holds configuration for the UI server.
type Config struct {
	Reader         dashboard.DatasetReader
	Port           int
	SessionSecret  string
	SessionMaxAge  int
	IdleTimeout    time.Duration
	PreviewRows    int
	MaxUploadBytes int64
	Dev            bool
	Logger         *slog.Logger
}

// NewServer creates a new UI server instance.
func NewServer(cfg Config) *Server {
	maxAge := cfg.SessionMaxAge
	if maxAge <= 0 {
		maxAge = DefaultSessionMaxAge
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(maxAge)
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	return &Server{
		sessions:     session.NewManager(cfg.IdleTimeout, logger),
		sessionStore: sessionStore,
		reader:       cfg.Reader,
		port:         cfg.Port,
		opts: dashboard.Options{
			PreviewRows:    cfg.PreviewRows,
			MaxUploadBytes: cfg.MaxUploadBytes,
			IsDev:          cfg.Dev,
		},
		logger:   logger,
		notifier: notifier.New(),
	}
}

// Handler builds the HTTP handler with middleware and all routes.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	deps := router.Deps{
		Sessions:     s.sessions,
		SessionStore: s.sessionStore,
		Reader:       s.reader,
		Notifier:     s.notifier,
		Options:      s.opts,
		Logger:       s.logger,
	}
	if err := router.SetupRoutes(r, deps); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting UI server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	handler, err := s.Handler()
	if err != nil {
		return err
	}

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Idle session sweeper
	eg.Go(func() error {
		return s.sessions.Run(egctx)
	})

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down UI server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Sessions returns the server's session manager.
func (s *Server) Sessions() *session.Manager {
	return s.sessions
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}
