// Package middleware holds the chi-compatible middlewares the router
// stacks in front of the handlers.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/aanand-mishra/records-api/internal/apperror"
	"github.com/aanand-mishra/records-api/internal/storage"
)

// Guard blocks requests until the datastore handle is established.
//
// With no connection it answers 503 and never calls next. There is no
// waiting and no retry: the check is fail-fast.
func Guard(h *storage.Handle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !h.Ready() {
				apperror.Write(w, r, apperror.ErrNotConnected)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Logger writes one structured line per request.
func Logger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				log.Info("request",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Int("status", ww.Status()),
					slog.Int("bytes", ww.BytesWritten()),
					slog.Duration("duration", time.Since(start)),
					slog.String("request_id", chimw.GetReqID(r.Context())),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
