// Package router sets up HTTP routes for the UI server.
package router

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/tabview/internal/session"
	dashboardFeature "github.com/leapstack-labs/tabview/internal/ui/features/dashboard"
	"github.com/leapstack-labs/tabview/internal/ui/notifier"
	"github.com/leapstack-labs/tabview/internal/ui/resources"
)

// Deps are the shared dependencies handed to feature routes.
type Deps struct {
	Sessions     *session.Manager
	SessionStore sessions.Store
	Reader       dashboardFeature.DatasetReader
	Notifier     *notifier.Notifier
	Options      dashboardFeature.Options
	Logger       *slog.Logger
}

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(router chi.Router, deps Deps) error {
	// Hot reload endpoint for dev mode
	if deps.Options.IsDev {
		setupReload(router)
	}

	// Static assets
	router.Handle("/static/*", resources.Handler())

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	// Feature routes
	return dashboardFeature.SetupRoutes(
		router,
		deps.Sessions,
		deps.SessionStore,
		deps.Reader,
		deps.Notifier,
		deps.Options,
		deps.Logger,
	)
}

func setupReload(router chi.Router) {
	reloadChan := make(chan struct{}, 1)
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		reload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(reload)
		select {
		case <-reloadChan:
			reload()
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		select {
		case reloadChan <- struct{}{}:
		default:
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
