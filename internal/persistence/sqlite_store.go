package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/samdwyer/overworld/internal/world"
)

const sqliteFile = "worlds.db"

func sqlitePath(dir string) string {
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, sqliteFile)
}

// SQLiteStore keeps world documents in a single SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and ensures the schema.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	schema := `
CREATE TABLE IF NOT EXISTS worlds (
  name TEXT PRIMARY KEY,
  payload TEXT NOT NULL,
  updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init sqlite schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save upserts the world under name.
func (s *SQLiteStore) Save(ctx context.Context, name string, m *world.Map) error {
	return traceSave(ctx, BackendSQLite, name, func(ctx context.Context) (int, error) {
		payload, err := Marshal(m)
		if err != nil {
			return 0, fmt.Errorf("encode world: %w", err)
		}
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO worlds(name, payload, updated_at)
			 VALUES(?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT(name) DO UPDATE SET
			   payload=excluded.payload,
			   updated_at=CURRENT_TIMESTAMP`,
			name,
			string(payload),
		)
		if err != nil {
			return 0, fmt.Errorf("save world %q: %w", name, err)
		}
		return len(payload), nil
	})
}

// Load reads the world saved under name.
func (s *SQLiteStore) Load(ctx context.Context, name string) (*world.Map, error) {
	return traceLoad(ctx, BackendSQLite, name, func(ctx context.Context) ([]byte, error) {
		var payload string
		err := s.db.QueryRowContext(ctx, `SELECT payload FROM worlds WHERE name = ?`, name).Scan(&payload)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
			}
			return nil, fmt.Errorf("load world %q: %w", name, err)
		}
		return []byte(payload), nil
	})
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
