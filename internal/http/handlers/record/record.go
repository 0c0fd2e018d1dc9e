// Package record contains the HTTP handlers for the Record resource.
//
// Handlers are built with the closure / factory pattern: a factory takes
// the dependencies (the storage handle and the per-call timeout) once at
// route registration and returns the http.HandlerFunc the router calls
// on every request:
//
//	r.Post("/api/data", record.New(handle, cfg.Storage.OpTimeout))
//
// Handlers never write error responses themselves. They return an
// apperror.Error and apperror.Handler turns it into a response.
package record

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/records-api/internal/apperror"
	"github.com/aanand-mishra/records-api/internal/storage"
	"github.com/aanand-mishra/records-api/internal/types"
	"github.com/aanand-mishra/records-api/internal/utils/response"
)

// Messages returned to the caller on validation failure.
const (
	MsgMissingFields = "Please provide both name and age"
	MsgAgeNotNumber  = "Age must be a number"
	MsgInvalidBody   = "invalid request body"
)

// validate caches struct metadata; a *Validate is safe for concurrent use.
var validate = validator.New()

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/data
// Validates and inserts one record.
//
// Request body, JSON or an HTML form post:
//
//	{ "name": "Alice", "age": 30 }
//	name=Alice&age=30
//
// Success response (201 Created):
//
//	{ "id": "6650c0f1e4b0a1b2c3d4e5f6" }
//
// Error responses:
//
//	400 Bad Request  — missing field, non-numeric age, malformed JSON
//	500 Internal     — datastore error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(h *storage.Handle, timeout time.Duration) http.HandlerFunc {
	return apperror.Handler(func(w http.ResponseWriter, r *http.Request) error {
		s := h.Get()
		if s == nil {
			return apperror.ErrNotConnected
		}

		in, err := decode(r)
		if err != nil {
			return err
		}

		age, err := check(in)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		id, err := s.CreateRecord(ctx, in.Name, age)
		if err != nil {
			return apperror.Wrap(err)
		}

		slog.Info("record created", slog.String("id", id))

		response.WriteJSON(w, r, http.StatusCreated, map[string]string{"id": id})
		return nil
	})
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/data
// Returns every record, in the order the datastore yields them.
//
// Success response (200 OK):
//
//	[ { "id": "...", "name": "Alice", "age": 30 } ]
//
// Returns [] (not null) for an empty collection.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(h *storage.Handle, timeout time.Duration) http.HandlerFunc {
	return apperror.Handler(func(w http.ResponseWriter, r *http.Request) error {
		s := h.Get()
		if s == nil {
			return apperror.ErrNotConnected
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		records, err := s.GetRecords(ctx)
		if err != nil {
			return apperror.Wrap(err)
		}
		if records == nil {
			records = []types.Record{}
		}

		slog.Debug("listed records", slog.Int("count", len(records)))

		response.WriteJSON(w, r, http.StatusOK, records)
		return nil
	})
}

// decode reads name and age from a JSON or form body. An empty body, or a
// content type that is neither, yields empty fields and fails validation
// as "missing".
func decode(r *http.Request) (types.NewRecord, error) {
	switch render.GetRequestContentType(r) {
	case render.ContentTypeJSON:
		var p payload
		err := render.DecodeJSON(r.Body, &p)
		if errors.Is(err, io.EOF) {
			return types.NewRecord{}, nil
		}
		if err != nil {
			return types.NewRecord{}, apperror.InvalidWrap(MsgInvalidBody, err)
		}
		name, age := p.record()
		return types.NewRecord{Name: name, Age: age}, nil

	case render.ContentTypeForm:
		if err := r.ParseForm(); err != nil {
			return types.NewRecord{}, apperror.InvalidWrap(MsgInvalidBody, err)
		}
		return types.NewRecord{
			Name: formValue(r.PostForm["name"]),
			Age:  formValue(r.PostForm["age"]),
		}, nil

	default:
		return types.NewRecord{}, nil
	}
}

// check runs the validation rules in order, first failure wins:
//  1. both fields present
//  2. age numeric
//
// It returns the parsed age, which is what gets stored.
func check(in types.NewRecord) (float64, error) {
	in.Age = strings.TrimSpace(in.Age)

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return 0, apperror.Wrap(err)
		}
		for _, e := range verrs {
			if e.Tag() == "required" {
				return 0, apperror.Invalid(MsgMissingFields)
			}
		}
		return 0, apperror.Invalid(MsgAgeNotNumber)
	}

	// "numeric" admits digit strings too long for a float64.
	age, err := strconv.ParseFloat(in.Age, 64)
	if err != nil {
		return 0, apperror.InvalidWrap(MsgAgeNotNumber, err)
	}

	return age, nil
}
