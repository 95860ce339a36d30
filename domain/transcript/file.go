package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ReadFile loads a UTF-8 transcript. A leading byte-order mark is dropped.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("read transcript %s: not valid UTF-8", path)
	}
	return strings.TrimPrefix(string(data), "\ufeff"), nil
}

// WriteFile replaces path with content. The data is written to a temporary
// sibling first so an interrupted save leaves the old file intact.
func WriteFile(path, content string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".transcript-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp transcript: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("write transcript: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close transcript: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace transcript: %w", err)
	}
	return nil
}
