// Package taskspec reads generation requests from the plan directory.
package taskspec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"planforge/internal/domain"
)

// Ensure Loader implements domain.TaskSpecLoader.
var _ domain.TaskSpecLoader = (*Loader)(nil)

// Loader reads TaskSpec documents from disk. Field names are matched
// case-insensitively, unknown fields are ignored, and comments and trailing
// commas are tolerated so hand-edited documents survive decoding.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and decodes the document at path. The returned spec is already
// normalized: the build-unit list is de-duplicated and the commit message
// defaulted.
func (l *Loader) Load(path string) (*domain.TaskSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTaskSpecNotFound, path)
		}
		return nil, fmt.Errorf("read taskspec: %w", err)
	}

	var spec domain.TaskSpec
	if err := json.Unmarshal(sanitize(data), &spec); err != nil {
		return nil, fmt.Errorf("parse taskspec %s: %w", path, err)
	}

	spec.Normalize()
	return &spec, nil
}

// sanitize strips // and /* */ comments and trailing commas so the document
// decodes as plain JSON. Bytes inside string literals pass through untouched.
func sanitize(data []byte) []byte {
	var out bytes.Buffer
	inString := false
	escaped := false

	for i := 0; i < len(data); i++ {
		c := data[i]

		if inString {
			out.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch {
		case c == '"':
			inString = true
			out.WriteByte(c)
		case c == '/' && i+1 < len(data) && data[i+1] == '/':
			for i < len(data) && data[i] != '\n' {
				i++
			}
			if i < len(data) {
				out.WriteByte('\n')
			}
		case c == '/' && i+1 < len(data) && data[i+1] == '*':
			i += 2
			for i+1 < len(data) && !(data[i] == '*' && data[i+1] == '/') {
				i++
			}
			i++
			out.WriteByte(' ')
		case c == ',' && nextIsClose(data, i+1):
			// Trailing comma before a closing bracket: drop it.
		default:
			out.WriteByte(c)
		}
	}
	return out.Bytes()
}

// nextIsClose reports whether the next non-whitespace byte at or after pos
// closes an object or array.
func nextIsClose(data []byte, pos int) bool {
	for i := pos; i < len(data); i++ {
		switch data[i] {
		case ' ', '\t', '\r', '\n':
			continue
		case '}', ']':
			return true
		default:
			return false
		}
	}
	return false
}
