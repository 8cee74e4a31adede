// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/tabview/internal/dataset"
	"github.com/leapstack-labs/tabview/internal/dataset/duckdb"
	"github.com/leapstack-labs/tabview/internal/session"
	"github.com/leapstack-labs/tabview/internal/testutil"
	"github.com/leapstack-labs/tabview/internal/ui/notifier"
)

// TestSecret is the cookie signing key used by test session stores.
const TestSecret = "test-secret-key-32-bytes-long!!"

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Sessions     *session.Manager
	Reader       *duckdb.Reader
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore

	t *testing.T
}

// SetupTestFixture creates a fixture backed by an in-memory DuckDB reader.
func SetupTestFixture(t *testing.T) *TestFixture {
	t.Helper()

	logger := testutil.NewTestLogger(t)

	reader, err := duckdb.Open(context.Background(), ":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = reader.Close()
	})

	return &TestFixture{
		Sessions:     session.NewManager(time.Hour, logger),
		Reader:       reader,
		Notifier:     notifier.New(),
		SessionStore: NewTestSessionStore(),
		t:            t,
	}
}

// WriteCSV writes content to a file in a temp directory and returns its path.
func (f *TestFixture) WriteCSV(name, content string) string {
	f.t.Helper()
	path := filepath.Join(f.t.TempDir(), name)
	require.NoError(f.t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// LoadDataset reads content through the fixture's reader and stores it in
// the session sid.
func (f *TestFixture) LoadDataset(sid, name, content string) *dataset.Dataset {
	f.t.Helper()
	ds, err := f.Reader.ReadCSV(context.Background(), f.WriteCSV(name, content), name)
	require.NoError(f.t, err)
	f.Sessions.Get(sid).SetDataset(ds)
	return ds
}

// SessionCookie returns a signed cookie carrying sid, as the dashboard issues it.
func (f *TestFixture) SessionCookie(cookieName, key, sid string) *http.Cookie {
	f.t.Helper()
	encoded, err := f.SessionStore.Codecs[0].Encode(cookieName, map[any]any{key: sid})
	require.NoError(f.t, err)
	return sessions.NewCookie(cookieName, encoded, f.SessionStore.Options)
}

// RequestWithTimeout wraps a request with a context timeout.
func RequestWithTimeout(r *http.Request, timeout time.Duration) *http.Request {
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	_ = cancel // released when the timeout fires
	return r.WithContext(ctx)
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte(TestSecret))
}
