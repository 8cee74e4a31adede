package dashboard

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/tabview/internal/session"
	"github.com/leapstack-labs/tabview/internal/ui/notifier"
)

// SetupRoutes configures routes for the dashboard feature.
func SetupRoutes(
	router chi.Router,
	manager *session.Manager,
	sessionStore sessions.Store,
	reader DatasetReader,
	notify *notifier.Notifier,
	opts Options,
	logger *slog.Logger,
) error {
	handlers := NewHandlers(manager, sessionStore, reader, notify, opts, logger)

	router.Get("/", handlers.Page)
	router.Get("/view", handlers.ViewSSE)
	router.Post("/upload", handlers.Upload)
	router.Get("/updates", handlers.Updates)

	return nil
}
