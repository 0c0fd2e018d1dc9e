// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// It backs the "sqlite" storage driver: a single-file datastore for
// running the service without a MongoDB server. Records are stored as
// rows shaped like the Mongo documents ({id, name, age}) and the id is a
// UUID generated on insert, so it stays as opaque as an ObjectID.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/aanand-mishra/records-api/internal/config"
	"github.com/aanand-mishra/records-api/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// *sql.DB is a connection pool and safe for concurrent use.
type SQLite struct {
	Db *sql.DB
}

// New opens the database at cfg.Storage.Path, creates the records table
// if it does not already exist and returns a ready-to-use *SQLite.
func New(ctx context.Context, cfg *config.Config) (*SQLite, error) {
	path := cfg.Storage.Path

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite.New: create dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// sql.Open is lazy; PingContext makes the connect step real so a bad
	// path fails here rather than on the first request.
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: ping: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent, safe on every startup.
	//   id   — UUID text, generated by CreateRecord
	//   name — record name
	//   age  — always stored as a number
	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS records (
			id   TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			age  REAL NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// CreateRecord inserts a new row into the records table.
//
// Values are bound through ? placeholders, never concatenated into the
// SQL text, so user input is always treated as data.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) CreateRecord(ctx context.Context, name string, age float64) (string, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"INSERT INTO records (id, name, age) VALUES (?, ?, ?)",
	)
	if err != nil {
		return "", fmt.Errorf("CreateRecord: prepare: %w", err)
	}
	defer stmt.Close()

	id := uuid.NewString()

	if _, err := stmt.ExecContext(ctx, id, name, age); err != nil {
		return "", fmt.Errorf("CreateRecord: exec: %w", err)
	}

	return id, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GetRecords returns all rows as a slice. No ORDER BY: rows come back in
// whatever order SQLite scans them.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) GetRecords(ctx context.Context) ([]types.Record, error) {
	stmt, err := s.Db.PrepareContext(ctx, "SELECT id, name, age FROM records")
	if err != nil {
		return nil, fmt.Errorf("GetRecords: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("GetRecords: query: %w", err)
	}
	defer rows.Close()

	// Non-nil so an empty table encodes as [] rather than null.
	records := make([]types.Record, 0)

	for rows.Next() {
		var record types.Record

		if err := rows.Scan(&record.ID, &record.Name, &record.Age); err != nil {
			return nil, fmt.Errorf("GetRecords: scan row: %w", err)
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetRecords: rows iteration: %w", err)
	}

	return records, nil
}

func (s *SQLite) Close(context.Context) error {
	return s.Db.Close()
}
