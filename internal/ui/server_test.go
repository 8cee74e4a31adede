package ui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/tabview/internal/dataset/duckdb"
	"github.com/leapstack-labs/tabview/internal/testutil"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	logger := testutil.NewTestLogger(t)
	reader, err := duckdb.Open(context.Background(), "", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reader.Close() })

	return NewServer(Config{
		Reader:        reader,
		SessionSecret: "test-secret-key-32-bytes-long!!",
		IdleTimeout:   time.Minute,
		Logger:        logger,
	})
}

func TestServer_Routes(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"healthz", "/healthz", http.StatusOK, "ok"},
		{"page", "/", http.StatusOK, "<!doctype html>"},
		{"page with gated view", "/?page=map", http.StatusOK, "Please load a CSV file first."},
		{"static css", "/static/app.css", http.StatusOK, ".ui-layout"},
		{"unknown", "/nope", http.StatusNotFound, ""},
	}

	srv := newTestServer(t)
	handler, err := srv.Handler()
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestServer_ReusesSessionAcrossRequests(t *testing.T) {
	srv := newTestServer(t)
	handler, err := srv.Handler()
	require.NoError(t, err)

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := first.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)

	assert.Empty(t, second.Result().Cookies(), "an existing session is not reissued")
	assert.Equal(t, 1, srv.Sessions().Len())
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	srv := newTestServer(t)
	srv.port = 0

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
