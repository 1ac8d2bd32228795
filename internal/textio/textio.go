// Package textio reads and writes screenplay files as plain text and
// watches open files for external changes.
package textio

import (
	"fmt"
	"os"
	"path/filepath"
)

// Load reads a file's contents. Line ending normalization happens in
// the buffer at ingest, so the raw bytes pass through unchanged.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("loading %s: %w", path, err)
	}
	return string(data), nil
}

// Save writes text to path atomically: a temp file in the same
// directory is written, synced, and renamed over the target, so a
// crash mid-write never leaves a truncated screenplay.
func Save(path, text string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".fountainkit-*")
	if err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("saving %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("saving %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("saving %s: %w", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
