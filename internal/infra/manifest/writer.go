// Package manifest persists the touched-path list handed to the publishing
// step.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"planforge/internal/domain"
)

// Ensure Writer implements domain.ManifestWriter.
var _ domain.ManifestWriter = (*Writer)(nil)

// Writer flushes change sets to manifest files.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write flushes the change set to path: one path per line, sorted, no blank
// lines, UTF-8, overwriting any previous manifest.
func (w *Writer) Write(path string, set *domain.ChangeSet) error {
	var b strings.Builder
	for _, p := range set.Paths() {
		b.WriteString(p)
		b.WriteByte('\n')
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(b.String()), 0o644); err != nil { //nolint:gosec // Manifest is a repository artifact
		return fmt.Errorf("write temp manifest: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp manifest: %w", err)
	}

	return nil
}
