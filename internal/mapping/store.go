// Package mapping persists the destination-field to source-column mapping
// between sessions.
package mapping

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound means no mapping file exists at the given path. It is
// distinct from decode failures so callers can show "no saved mapping"
// instead of a generic error.
var ErrNotFound = errors.New("no saved mapping")

// Mapping maps destination field names to source column names. Each
// destination field maps to at most one column.
type Mapping map[string]string

// Save serializes the mapping as a JSON object and writes it to path.
// The write goes through a temp file and rename so a crash never leaves a
// truncated mapping behind.
func Save(m Mapping, path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding mapping: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".mapping-*.json")
	if err != nil {
		return fmt.Errorf("writing mapping: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing mapping: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing mapping: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing mapping: %w", err)
	}
	return nil
}

// Load reads a previously saved mapping. The result is not validated
// against any field list; stale destination fields load as-is.
func Load(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading mapping: %w", err)
	}

	var m Mapping
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding mapping: %w", err)
	}
	return m, nil
}
