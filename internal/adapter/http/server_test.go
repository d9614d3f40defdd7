package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readyFunc adapts a function to the ReadinessChecker interface.
type readyFunc func(ctx context.Context) error

func (f readyFunc) CheckReadiness(ctx context.Context) error { return f(ctx) }

func alwaysReady() ReadinessChecker {
	return readyFunc(func(context.Context) error { return nil })
}

func testServer(enrich, ingest, bulkLoad Runner) *Server {
	return NewServer(":0", alwaysReady(), enrich, ingest, bulkLoad, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func doRequest(t *testing.T, s *Server, method, path string) (int, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	var body map[string]string
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec.Code, body
}

func TestServer_Health(t *testing.T) {
	s := testServer(nil, nil, nil)
	code, body := doRequest(t, s, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
}

func TestServer_Ready(t *testing.T) {
	s := testServer(nil, nil, nil)
	code, body := doRequest(t, s, http.MethodGet, "/readyz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ready", body["status"])
}

func TestServer_NotReady(t *testing.T) {
	notReady := readyFunc(func(context.Context) error {
		return errors.New("schedule object schedule/ipl_full_schedule.csv not found")
	})
	s := NewServer(":0", notReady, nil, nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	code, body := doRequest(t, s, http.MethodGet, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "not ready", body["status"])
	assert.Contains(t, body["error"], "not found")
}

func TestServer_Enrich_Success(t *testing.T) {
	enrich := RunnerFunc(func(context.Context) (string, error) {
		return "enriched 2 of 2 candidates", nil
	})
	s := testServer(enrich, nil, nil)

	code, body := doRequest(t, s, http.MethodPost, "/v1/enrich")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "enriched 2 of 2 candidates", body["summary"])
}

func TestServer_Enrich_RunFailure(t *testing.T) {
	enrich := RunnerFunc(func(context.Context) (string, error) {
		return "", errors.New("load schedule: object missing")
	})
	s := testServer(enrich, nil, nil)

	code, body := doRequest(t, s, http.MethodPost, "/v1/enrich")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "failed", body["status"])
	assert.Contains(t, body["error"], "object missing")
}

func TestServer_UnconfiguredRunner(t *testing.T) {
	s := testServer(RunnerFunc(func(context.Context) (string, error) { return "", nil }), nil, nil)

	for _, path := range []string{"/v1/ingest", "/v1/bulk-load"} {
		code, body := doRequest(t, s, http.MethodPost, path)
		assert.Equal(t, http.StatusServiceUnavailable, code, path)
		assert.Equal(t, "unavailable", body["status"], path)
	}
}

func TestServer_MethodNotAllowed(t *testing.T) {
	s := testServer(nil, nil, nil)
	code, _ := doRequest(t, s, http.MethodGet, "/v1/enrich")
	assert.Equal(t, http.StatusMethodNotAllowed, code)
}

func TestServer_Metrics(t *testing.T) {
	s := testServer(nil, nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
