// Package apperror defines the typed error that flows from handlers to
// the HTTP boundary.
//
// Handlers return an *Error tagged with a Kind instead of writing error
// responses themselves. Handler (the adapter) turns the Kind into a
// status code, logs what deserves logging, and writes one uniform body.
package apperror

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/records-api/internal/utils/response"
)

// Kind classifies an error by who caused it.
type Kind int

const (
	// Internal is an operational failure (datastore error after the
	// connection was established). The cause is logged, never exposed.
	Internal Kind = iota
	// Validation is a client mistake; the message goes back verbatim.
	Validation
	// Unavailable means the datastore connection is not established.
	Unavailable
	// NotFound means nothing matched the request.
	NotFound
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Unavailable:
		return "unavailable"
	case NotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Status maps a Kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case Validation:
		return http.StatusBadRequest
	case Unavailable:
		return http.StatusServiceUnavailable
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is the tagged error variant.
type Error struct {
	Kind    Kind
	Message string // safe to show to the caller
	Err     error  // underlying cause, server-side only
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Public messages.
const (
	MsgInternal     = "internal server error"
	MsgNotConnected = "database connection not established"
	MsgNotFound     = "Not found"
)

var (
	// ErrNotConnected is returned when no datastore handle exists.
	ErrNotConnected = &Error{Kind: Unavailable, Message: MsgNotConnected}
	ErrNotFound     = &Error{Kind: NotFound, Message: MsgNotFound}
)

func Invalid(msg string) *Error {
	return &Error{Kind: Validation, Message: msg}
}

func InvalidWrap(msg string, err error) *Error {
	return &Error{Kind: Validation, Message: msg, Err: err}
}

// Wrap tags err as an operational failure.
func Wrap(err error) *Error {
	return &Error{Kind: Internal, Message: MsgInternal, Err: err}
}

// As returns err as an *Error. Untyped errors are treated as Internal.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err)
}

// HandlerFunc is an http.HandlerFunc that can fail.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handler adapts fn to http.HandlerFunc. It is the single place where
// errors become responses.
func Handler(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			Write(w, r, err)
		}
	}
}

// Write logs err according to its Kind and writes the error response.
func Write(w http.ResponseWriter, r *http.Request, err error) {
	appErr := As(err)

	switch appErr.Kind {
	case Validation:
		slog.Debug("request rejected",
			slog.String("path", r.URL.Path),
			slog.String("reason", appErr.Message))
	case NotFound:
		// nothing worth logging
	default:
		slog.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("kind", appErr.Kind.String()),
			slog.String("error", appErr.Error()))
	}

	if appErr.Kind == NotFound {
		response.WriteText(w, http.StatusNotFound, MsgNotFound)
		return
	}

	response.WriteJSON(w, r, appErr.Kind.Status(), response.ErrorMessage(appErr.Message))
}
