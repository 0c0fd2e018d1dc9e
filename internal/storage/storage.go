// Package storage defines the Storage interface, the contract any
// datastore backend must satisfy, and Handle, the injected holder of the
// connection that may or may not have been established yet.
//
// Handlers only know about these two types. Backends live in the
// sub-packages (mongodb, sqlite, memory) and are picked at startup.
package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/aanand-mishra/records-api/internal/types"
)

// Storage is the datastore contract.
type Storage interface {
	// CreateRecord inserts one record and returns the identifier the
	// datastore generated for it.
	CreateRecord(ctx context.Context, name string, age float64) (string, error)

	// GetRecords returns every record in natural datastore order.
	// Returns an empty slice (not nil) if there are none.
	GetRecords(ctx context.Context) ([]types.Record, error)

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}

// ErrAlreadySet is returned by Handle.Set on a second call.
var ErrAlreadySet = errors.New("storage handle already set")

// Handle holds the process' single datastore connection. It starts empty
// and is filled at most once, after the connect step succeeds. Readers
// never mutate it.
type Handle struct {
	mu sync.RWMutex
	s  Storage
}

// NewHandle returns an empty handle. Pass a Storage to get a handle that
// is ready from the start (tests, the memory driver).
func NewHandle(s ...Storage) *Handle {
	h := &Handle{}
	if len(s) > 0 {
		h.s = s[0]
	}
	return h
}

// Set publishes the established connection.
func (h *Handle) Set(s Storage) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.s != nil {
		return ErrAlreadySet
	}
	h.s = s
	return nil
}

// Get returns the connection, or nil if it is not established.
func (h *Handle) Get() Storage {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.s
}

// Ready reports whether a connection has been established.
func (h *Handle) Ready() bool {
	return h.Get() != nil
}
