// Package memory is an in-process implementation of storage.Storage.
//
// It backs the "memory" storage driver for local development and is the
// fake every handler test runs against. Records live only as long as the
// process.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/aanand-mishra/records-api/internal/types"
)

// Store keeps records in insertion order behind a RWMutex.
type Store struct {
	mu      sync.RWMutex
	records []types.Record
}

func New() *Store {
	return &Store{}
}

func (s *Store) CreateRecord(ctx context.Context, name string, age float64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := uuid.NewString()

	s.mu.Lock()
	s.records = append(s.records, types.Record{ID: id, Name: name, Age: age})
	s.mu.Unlock()

	return id, nil
}

func (s *Store) GetRecords(ctx context.Context) ([]types.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Len reports how many records are stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) Close(context.Context) error { return nil }
