package apperror_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/records-api/internal/apperror"
	"github.com/aanand-mishra/records-api/internal/utils/response"
)

func serve(t *testing.T, fn apperror.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	apperror.Handler(fn).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/data", nil))
	return rr
}

func TestHandler_StatusPerKind(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", apperror.Invalid("Age must be a number"), http.StatusBadRequest, "Age must be a number"},
		{"unavailable", apperror.ErrNotConnected, http.StatusServiceUnavailable, "database connection not established"},
		{"internal", apperror.Wrap(errors.New("socket closed")), http.StatusInternalServerError, "internal server error"},
		{"untyped", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
		{"wrapped typed", fmt.Errorf("ctx: %w", apperror.Invalid("bad")), http.StatusBadRequest, "bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(t, func(http.ResponseWriter, *http.Request) error { return tt.err })

			assert.Equal(t, tt.status, rr.Code)
			var body response.Response
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, response.StatusError, body.Status)
			assert.Equal(t, tt.message, body.Error)
		})
	}
}

func TestHandler_InternalCauseNotLeaked(t *testing.T) {
	rr := serve(t, func(http.ResponseWriter, *http.Request) error {
		return apperror.Wrap(errors.New("auth failed for user admin"))
	})

	assert.NotContains(t, rr.Body.String(), "admin")
}

func TestHandler_NotFoundIsPlainText(t *testing.T) {
	rr := serve(t, func(http.ResponseWriter, *http.Request) error {
		return apperror.ErrNotFound
	})

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Not found", rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/plain")
}

func TestHandler_NilErrorWritesNothingExtra(t *testing.T) {
	rr := serve(t, func(w http.ResponseWriter, _ *http.Request) error {
		w.WriteHeader(http.StatusNoContent)
		return nil
	})

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := apperror.Wrap(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal: internal server error: timeout", err.Error())
}
