// Package response provides helpers for writing consistent HTTP responses.
//
// Every API handler sends JSON back to the client. Rather than repeating
// the same lines (set header, set status, encode JSON) in every handler,
// they are centralised here on top of go-chi/render.
package response

import (
	"net/http"

	"github.com/go-chi/render"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the standard envelope returned for error cases.
//
// Success responses may return any JSON shape (a record list, an id…).
// Error responses always look like:
//
//	{ "status": "error", "error": "Age must be a number" }
//
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes data as JSON with the given HTTP status code.
//
// render.Status stores the code on the request context and render.JSON
// picks it up, sets Content-Type and encodes the body.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	render.Status(r, status)
	render.JSON(w, r, data)
}

// ErrorMessage wraps a caller-safe message into the error envelope.
func ErrorMessage(msg string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
	}
}

// WriteText writes a plain-text body. Used for the "Not found" fallback.
func WriteText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
