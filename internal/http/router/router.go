// Package router assembles the full HTTP surface of the service:
//
//	GET  /add        → static add.html form
//	GET  /api/data   → list records        (behind the connection guard)
//	POST /api/data   → insert one record   (behind the connection guard)
//	GET  /*          → static assets
//	*                → 404 "Not found"
package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/aanand-mishra/records-api/internal/apperror"
	"github.com/aanand-mishra/records-api/internal/http/handlers/record"
	"github.com/aanand-mishra/records-api/internal/http/middleware"
	"github.com/aanand-mishra/records-api/internal/http/static"
	"github.com/aanand-mishra/records-api/internal/storage"
)

// Options carries everything the routes depend on.
type Options struct {
	Log       *slog.Logger
	Handle    *storage.Handle
	StaticDir string
	OpTimeout time.Duration
}

// New returns the root handler.
func New(opts Options) http.Handler {
	notFound := http.HandlerFunc(NotFound)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(requestIDHeader)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(opts.Log))
	r.Use(chimw.Recoverer)
	// /api/data/ routes like /api/data.
	r.Use(chimw.StripSlashes)
	// HEAD runs the GET handler; ServeContent and net/http drop the body.
	r.Use(chimw.GetHead)

	r.NotFound(NotFound)
	r.MethodNotAllowed(NotFound)

	r.Get("/add", static.File(opts.StaticDir, "add.html", notFound))

	// The guard wraps only the API routes, so unknown methods on
	// /api/data still fall through to NotFound.
	guard := middleware.Guard(opts.Handle)
	r.With(guard).Get("/api/data", record.GetList(opts.Handle, opts.OpTimeout))
	r.With(guard).Post("/api/data", record.New(opts.Handle, opts.OpTimeout))

	r.Get("/*", static.Dir(opts.StaticDir, notFound))

	return r
}

// NotFound answers every unmatched request with a plain "Not found".
func NotFound(w http.ResponseWriter, r *http.Request) {
	apperror.Write(w, r, apperror.ErrNotFound)
}

// requestIDHeader echoes the id chi's RequestID middleware assigned.
func requestIDHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			w.Header().Set(chimw.RequestIDHeader, id)
		}
		next.ServeHTTP(w, r)
	})
}
