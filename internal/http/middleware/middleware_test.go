package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/records-api/internal/http/middleware"
	"github.com/aanand-mishra/records-api/internal/storage"
	"github.com/aanand-mishra/records-api/internal/storage/memory"
	"github.com/aanand-mishra/records-api/internal/utils/response"
)

// spy records whether the guarded handler ran.
type spy struct{ called bool }

func (s *spy) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	s.called = true
	w.WriteHeader(http.StatusTeapot)
}

func TestGuard_DeniesWithoutConnection(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPost} {
		t.Run(method, func(t *testing.T) {
			next := &spy{}
			h := middleware.Guard(storage.NewHandle())(next)

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(method, "/api/data", nil))

			assert.False(t, next.called, "handler must not run")
			assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

			var body response.Response
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, "database connection not established", body.Error)
		})
	}
}

func TestGuard_PassesThroughOnceConnected(t *testing.T) {
	handle := storage.NewHandle()
	next := &spy{}
	h := middleware.Guard(handle)(next)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/data", nil))
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)

	require.NoError(t, handle.Set(memory.New()))

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/data", nil))
	assert.True(t, next.called)
	assert.Equal(t, http.StatusTeapot, rr.Code)
}

func TestLogger_RecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	h := middleware.Logger(log)(&spy{})
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/add", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "request", line["msg"])
	assert.Equal(t, "/add", line["path"])
	assert.Equal(t, float64(http.StatusTeapot), line["status"])
}
