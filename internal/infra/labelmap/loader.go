// Package labelmap loads the document mapping work-item labels to
// TaskSpec fields.
package labelmap

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"planforge/internal/domain"
)

// Ensure Loader implements domain.LabelMapLoader.
var _ domain.LabelMapLoader = (*Loader)(nil)

// Loader reads label maps from YAML files.
type Loader struct{}

// NewLoader creates a label map loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and parses the label map at path.
func (l *Loader) Load(path string) (*domain.LabelMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrLabelMapNotFound, path)
		}
		return nil, fmt.Errorf("read label map %s: %w", path, err)
	}

	var lm domain.LabelMap
	if err := yaml.Unmarshal(data, &lm); err != nil {
		return nil, fmt.Errorf("parse label map %s: %w", path, err)
	}
	return &lm, nil
}
