package persistence

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/samdwyer/overworld/internal/world"
)

// SaveFile writes m to path as a JSON document.
func SaveFile(path string, m *world.Map) error {
	var buf bytes.Buffer
	if err := Write(&buf, m); err != nil {
		return fmt.Errorf("encode world: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// LoadFile reads a JSON document from path. A missing file yields ErrNotFound,
// an unreadable document ErrMalformed.
func LoadFile(path string) (*world.Map, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	return data, nil
}

// FileStore keeps one <name>.json document per world in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Path returns the file a world name is stored under. The name must pass ValidateName.
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Save writes the world, replacing any earlier save under the same name.
func (s *FileStore) Save(ctx context.Context, name string, m *world.Map) error {
	return traceSave(ctx, BackendJSON, name, func(context.Context) (int, error) {
		data, err := Marshal(m)
		if err != nil {
			return 0, fmt.Errorf("encode world: %w", err)
		}

		// Replaced via rename; readers never see a partial file.
		path := s.Path(name)
		tmp := path + ".tmp"
		if err := os.WriteFile(tmp, data, 0o644); err != nil {
			return 0, err
		}
		if err := os.Rename(tmp, path); err != nil {
			_ = os.Remove(tmp)
			return 0, err
		}
		return len(data), nil
	})
}

// Load reads the world saved under name.
func (s *FileStore) Load(ctx context.Context, name string) (*world.Map, error) {
	return traceLoad(ctx, BackendJSON, name, func(context.Context) ([]byte, error) {
		return readFile(s.Path(name))
	})
}

// Close is a no-op for the file store.
func (s *FileStore) Close() error { return nil }
