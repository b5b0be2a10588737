// Package atomicio writes files via temp-file-then-rename so a crash or
// a concurrent reader never observes a partially written file (spec.md
// §4.1, §5, §8.1 invariant 6). Adapted from internal/io/atomic.go.
package atomicio

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// WriteJSON marshals v with 2-space indentation (spec.md §6.2) and
// writes it atomically to path.
func WriteJSON(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return WriteBytes(path, data)
}

// WriteBytes writes data to path atomically via a sibling temp file.
func WriteBytes(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
