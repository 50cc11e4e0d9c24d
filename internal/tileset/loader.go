package tileset

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load unmarshals a JSON file from the embedded filesystem.
func Load[T any](filename string) (T, error) {
	content, err := dataFS.ReadFile(filename)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("read embedded %s: %w", filename, err)
	}
	return decode[T](content, filename)
}

// LoadFile unmarshals a JSON file from disk.
func LoadFile[T any](path string) (T, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("read %s: %w", path, err)
	}
	return decode[T](content, path)
}

func decode[T any](content []byte, source string) (T, error) {
	var result T
	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("parse %s: %w", source, err)
	}
	return result, nil
}
