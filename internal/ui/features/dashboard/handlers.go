// Package dashboard provides the HTTP handlers of the CSV dashboard.
package dashboard

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/a-h/templ"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	dash "github.com/leapstack-labs/tabview/internal/dashboard"
	"github.com/leapstack-labs/tabview/internal/session"
	"github.com/leapstack-labs/tabview/internal/ui/features/dashboard/pages"
	"github.com/leapstack-labs/tabview/internal/ui/features/dashboard/types"
	"github.com/leapstack-labs/tabview/internal/ui/notifier"
)

const (
	// CookieName is the name of the session cookie.
	CookieName = "tabview"
	sessionKey = "sid"

	// UploadField is the multipart field holding the CSV file.
	UploadField = types.UploadField

	// UploadSuccessMessage is flashed after a file has been loaded.
	UploadSuccessMessage = "File uploaded successfully!"

	// DefaultMaxUploadBytes limits uploads when no limit is configured.
	DefaultMaxUploadBytes = 200 << 20
)

// Handlers provides HTTP handlers for the dashboard feature.
type Handlers struct {
	sessions     *session.Manager
	sessionStore sessions.Store
	reader       DatasetReader
	notifier     *notifier.Notifier
	opts         Options
	logger       *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(
	manager *session.Manager,
	sessionStore sessions.Store,
	reader DatasetReader,
	notify *notifier.Notifier,
	opts Options,
	logger *slog.Logger,
) *Handlers {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		sessions:     manager,
		sessionStore: sessionStore,
		reader:       reader,
		notifier:     notify,
		opts:         opts,
		logger:       logger,
	}
}

// Page renders the full dashboard page for the page and selections in the query string.
func (h *Handlers) Page(w http.ResponseWriter, r *http.Request) {
	_, state := h.session(w, r)

	q := r.URL.Query()
	sel := dash.Selections{
		X:      q.Get("x"),
		Y:      q.Get("y"),
		Column: q.Get("column"),
		Lat:    q.Get("lat"),
		Lon:    q.Get("lon"),
	}
	out := dash.Render(state, dash.ParsePage(q.Get("page")), sel, h.renderOptions())
	h.writePage(w, r, http.StatusOK, state, out)
}

// ViewSSE re-renders the view for the page and selections held in the signals.
func (h *Handlers) ViewSSE(w http.ResponseWriter, r *http.Request) {
	_, state := h.session(w, r)

	var signals types.ViewSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sse := datastar.NewSSE(w, r)

	out := dash.Render(state, dash.ParsePage(signals.Page), signals.Selections(), h.renderOptions())
	if err := sse.MarshalAndPatchSignals(types.SignalsFor(out)); err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.PatchElementTempl(pages.View(out)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// Upload loads the posted CSV file into the session, replacing any previous
// dataset, and renders the Load Data page with the outcome.
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	sid, state := h.session(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes)
	file, header, err := r.FormFile(UploadField)
	if err != nil {
		if isTooLarge(err) {
			h.uploadFailed(w, r, state, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("The file is larger than %d MB.", h.opts.MaxUploadBytes>>20))
			return
		}
		h.uploadFailed(w, r, state, http.StatusBadRequest, "Choose a CSV file to upload.")
		return
	}
	defer func() { _ = file.Close() }()

	path, err := spool(file)
	if err != nil {
		if isTooLarge(err) {
			h.uploadFailed(w, r, state, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("The file is larger than %d MB.", h.opts.MaxUploadBytes>>20))
			return
		}
		h.logger.Error("failed to store upload", "error", err)
		h.uploadFailed(w, r, state, http.StatusInternalServerError, "The upload could not be stored.")
		return
	}
	defer func() { _ = os.Remove(path) }()

	name := filepath.Base(header.Filename)
	ds, err := h.reader.ReadCSV(r.Context(), path, name)
	if err != nil {
		h.logger.Info("rejected upload", "file", name, "error", err)
		h.uploadFailed(w, r, state, http.StatusBadRequest, fmt.Sprintf("Could not load %s: %v", name, err))
		return
	}

	state.SetDataset(ds)
	h.logger.Info("dataset loaded", "session", sid, "file", name, "rows", ds.Rows(), "columns", ds.Width())
	h.notifier.Broadcast(sid)

	out := dash.Render(state, dash.PageLoadData, dash.Selections{}, h.renderOptions())
	out.Flash = &dash.Flash{Kind: dash.FlashSuccess, Message: UploadSuccessMessage}
	h.writePage(w, r, http.StatusOK, state, out)
}

// Updates is the long-lived SSE endpoint that re-patches the sidebar status
// whenever the session's dataset changes.
func (h *Handlers) Updates(w http.ResponseWriter, r *http.Request) {
	sid, state := h.session(w, r)

	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe(sid)
	defer h.notifier.Unsubscribe(sid, updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			if err := sse.PatchElementTempl(pages.Status(statusFor(state))); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

// session resolves the caller's session, issuing a new ID cookie when the
// request carries none. It must run before anything is written to w.
func (h *Handlers) session(w http.ResponseWriter, r *http.Request) (string, *session.State) {
	// An undecodable cookie yields a fresh session alongside the error.
	sess, _ := h.sessionStore.Get(r, CookieName)

	sid, _ := sess.Values[sessionKey].(string)
	if sid == "" {
		sid = session.NewID()
		sess.Values[sessionKey] = sid
		if err := sess.Save(r, w); err != nil {
			h.logger.Warn("failed to save session cookie", "error", err)
		}
	}
	return sid, h.sessions.Get(sid)
}

func (h *Handlers) renderOptions() dash.Options {
	return dash.Options{PreviewRows: h.opts.PreviewRows}
}

func (h *Handlers) uploadFailed(w http.ResponseWriter, r *http.Request, state *session.State, status int, msg string) {
	out := dash.Render(state, dash.PageLoadData, dash.Selections{}, h.renderOptions())
	out.Flash = &dash.Flash{Kind: dash.FlashError, Message: msg}
	h.writePage(w, r, status, state, out)
}

func (h *Handlers) writePage(w http.ResponseWriter, r *http.Request, status int, state *session.State, out dash.Output) {
	data := types.PageData{
		Output: out,
		Status: statusFor(state),
		IsDev:  h.opts.IsDev,
	}
	writeComponent(w, r, status, pages.Page(data))
}

func writeComponent(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func statusFor(state *session.State) types.StatusData {
	if !state.HasDataset() {
		return types.StatusData{}
	}
	ds := state.Dataset()
	return types.StatusData{
		Loaded: true,
		Name:   ds.Name(),
		Rows:   ds.Rows(),
		Width:  ds.Width(),
	}
}

// spool copies an upload to a temporary file and returns its path.
func spool(src io.Reader) (string, error) {
	tmp, err := os.CreateTemp("", "tabview-*.csv")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := io.Copy(tmp, src); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	return tmp.Name(), nil
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large")
}
