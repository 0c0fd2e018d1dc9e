// Package types holds the shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// handlers, storage backends and utils can all import types without
// depending on each other.
package types

// Record is the single entity this service persists: a name/age pair
// plus the identifier the datastore assigned on insertion.
//
// ID is opaque to the service. MongoDB hands back an ObjectID (rendered
// as its hex string), the SQLite and in-memory backends use UUIDs.
//
// Age is always stored and returned as a number, whatever shape the
// client sent it in ("30" or 30).
type Record struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Age  float64 `json:"age"`
}

// NewRecord is the validated payload of an insert request.
//
// The validate tags are checked by go-playground/validator. "numeric"
// accepts an optional sign, digits and an optional decimal fraction.
type NewRecord struct {
	Name string `json:"name" validate:"required"`
	Age  string `json:"age"  validate:"required,numeric"`
}
