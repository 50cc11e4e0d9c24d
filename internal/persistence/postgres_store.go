package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/samdwyer/overworld/internal/world"
)

// PostgresStore keeps world documents in a PostgreSQL JSONB column.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to the database and ensures the schema.
func NewPostgresStore(ctx context.Context, connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS worlds (
		name TEXT PRIMARY KEY,
		payload JSONB NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Save upserts the world under name.
func (s *PostgresStore) Save(ctx context.Context, name string, m *world.Map) error {
	return traceSave(ctx, BackendPostgres, name, func(ctx context.Context) (int, error) {
		payload, err := Marshal(m)
		if err != nil {
			return 0, fmt.Errorf("encode world: %w", err)
		}

		query := `
		INSERT INTO worlds (name, payload)
		VALUES ($1, $2)
		ON CONFLICT (name)
		DO UPDATE SET payload = $2, updated_at = NOW()
		`
		if _, err := s.db.ExecContext(ctx, query, name, string(payload)); err != nil {
			return 0, fmt.Errorf("failed to save world: %w", err)
		}
		return len(payload), nil
	})
}

// Load reads the world saved under name.
func (s *PostgresStore) Load(ctx context.Context, name string) (*world.Map, error) {
	return traceLoad(ctx, BackendPostgres, name, func(ctx context.Context) ([]byte, error) {
		var payload string
		err := s.db.QueryRowContext(ctx, `SELECT payload FROM worlds WHERE name = $1`, name).Scan(&payload)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
			}
			return nil, fmt.Errorf("failed to load world: %w", err)
		}
		return []byte(payload), nil
	})
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
