package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaot623/gogo/studybuddy/internal/config"
	"github.com/xiaot623/gogo/studybuddy/internal/repository"
	"github.com/xiaot623/gogo/studybuddy/internal/service"
	"github.com/xiaot623/gogo/studybuddy/internal/transport/ws"
	"github.com/xiaot623/gogo/studybuddy/tests/helpers"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(repository.NewMemoryStore(), helpers.NewStubCompleter("Plants eat light."), helpers.NewTestPolicyEngine(t), repository.BackendMemory, logger)
	return NewServer(svc, ws.NewServer(config.Defaults(), svc, logger), logger)
}

func TestRoutes(t *testing.T) {
	e := newTestServer(t)

	tests := []struct {
		method string
		target string
		body   string
		ctype  string
		code   int
	}{
		{http.MethodGet, "/health", "", "", http.StatusOK},
		{http.MethodGet, "/v1/status", "", "", http.StatusOK},
		{http.MethodGet, "/v1/history", "", "", http.StatusOK},
		{http.MethodGet, "/v1/history/0", "", "", http.StatusNotFound},
		{http.MethodPost, "/v1/explain", `{"topic":"photosynthesis"}`, "application/json", http.StatusOK},
		{http.MethodPost, "/v1/explain", `{"topic":""}`, "application/json", http.StatusUnprocessableEntity},
		{http.MethodGet, "/?page=history", "", "", http.StatusOK},
		{http.MethodPost, "/flashcards", "topic=cells", "application/x-www-form-urlencoded", http.StatusOK},
		{http.MethodGet, "/missing", "", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
		if tt.ctype != "" {
			req.Header.Set("Content-Type", tt.ctype)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, tt.code, rec.Code, "%s %s", tt.method, tt.target)
	}
}

func TestRequestIDHeader(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("X-Request-Id"), "req_"))
}
