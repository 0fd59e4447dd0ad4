// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"planforge/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from the plan directory's TOML file.
type Loader struct {
	planDir string
}

// NewLoader creates a new Loader reading from planDir.
func NewLoader(planDir string) *Loader {
	return &Loader{planDir: planDir}
}

// Load returns the configuration from forge.toml decoded over the defaults,
// so fields absent from the file keep their default values. A missing file
// yields the defaults unchanged.
func (l *Loader) Load() (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()

	path := domain.ConfigPath(l.planDir)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	switch cfg.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		cfg.Warnings = append(cfg.Warnings,
			fmt.Sprintf("unknown log level %q in %s, using info", cfg.Log.Level, path))
	}
	return cfg, nil
}
