package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/overworld/internal/telemetry"
	"github.com/samdwyer/overworld/internal/world"
)

// Storage backends selectable by name.
const (
	BackendJSON     = "json"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Store defines the interface for world persistence.
type Store interface {
	Save(ctx context.Context, name string, m *world.Map) error
	Load(ctx context.Context, name string) (*world.Map, error)
	Close() error
}

// Options configures Open.
type Options struct {
	Backend     string
	DataDir     string // json and sqlite backends
	DatabaseURL string // postgres backend
}

// Open returns the store for the configured backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendJSON:
		return NewFileStore(opts.DataDir)
	case BackendSQLite:
		return NewSQLiteStore(ctx, sqlitePath(opts.DataDir))
	case BackendPostgres:
		if opts.DatabaseURL == "" {
			return nil, fmt.Errorf("postgres backend requires a database URL")
		}
		return NewPostgresStore(ctx, opts.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}

// ErrInvalidName is returned for save names outside [a-z0-9_-].
var ErrInvalidName = errors.New("invalid save name")

// ValidateName checks that name is non-empty and uses only lower-case letters,
// digits, '_' and '-'. Names are used verbatim as keys by every backend.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	for _, ch := range name {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9', ch == '_', ch == '-':
		default:
			return fmt.Errorf("%w: %q may only contain a-z, 0-9, '_' and '-'", ErrInvalidName, name)
		}
	}
	return nil
}

// traceSave wraps a backend write in a persistence.save span.
func traceSave(ctx context.Context, backend, name string, fn func(context.Context) (int, error)) error {
	ctx, span := telemetry.Tracer("persistence").Start(ctx, "persistence.save",
		trace.WithAttributes(
			attribute.String("backend", backend),
			attribute.String("name", name),
		),
	)
	defer span.End()

	if err := ValidateName(name); err != nil {
		telemetry.Fail(span, err)
		return err
	}
	n, err := fn(ctx)
	if err != nil {
		telemetry.Fail(span, err)
		return err
	}
	span.SetAttributes(attribute.Int("bytes", n))
	return nil
}

// traceLoad wraps a backend read in a persistence.load span.
func traceLoad(ctx context.Context, backend, name string, fn func(context.Context) ([]byte, error)) (*world.Map, error) {
	ctx, span := telemetry.Tracer("persistence").Start(ctx, "persistence.load",
		trace.WithAttributes(
			attribute.String("backend", backend),
			attribute.String("name", name),
		),
	)
	defer span.End()

	var data []byte
	err := ValidateName(name)
	if err == nil {
		data, err = fn(ctx)
	}
	if err == nil {
		span.SetAttributes(attribute.Int("bytes", len(data)))
		var m *world.Map
		if m, err = Unmarshal(data); err == nil {
			return m, nil
		}
	}
	telemetry.Fail(span, err)
	return nil, err
}
