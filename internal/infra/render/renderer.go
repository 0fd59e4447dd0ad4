package render

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"planforge/internal/domain"
)

// Ensure Renderer implements domain.Renderer.
var _ domain.Renderer = (*Renderer)(nil)

// tokenPattern matches placeholder tokens like {{name}}.
var tokenPattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Renderer renders built-in templates below a working-tree root.
type Renderer struct {
	root      string
	templates map[string]string
}

// NewRenderer creates a Renderer writing below root.
func NewRenderer(root string) *Renderer {
	return &Renderer{root: root, templates: builtinTemplates()}
}

// HasTemplate reports whether a template is registered under name.
func (r *Renderer) HasTemplate(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// Render loads the named template, substitutes the placeholder tokens
// present in data and writes the target only when the computed content
// differs from what is on disk. Tokens absent from data stay verbatim so
// partially-filled templates round-trip unchanged.
func (r *Renderer) Render(targetPath, templateName string, data map[string]string) (domain.RenderResult, error) {
	if targetPath == "" {
		return domain.RenderUnchanged, domain.ErrEmptyTargetPath
	}
	if templateName == "" {
		return domain.RenderUnchanged, domain.ErrEmptyTemplateName
	}

	tmpl, ok := r.templates[templateName]
	if !ok {
		return domain.RenderUnchanged, fmt.Errorf("%w: %s", domain.ErrTemplateNotFound, templateName)
	}

	content := []byte(substitute(tmpl, data))
	abs := filepath.Join(r.root, filepath.FromSlash(targetPath))

	existing, err := os.ReadFile(abs)
	if err == nil && bytes.Equal(existing, content) {
		return domain.RenderUnchanged, nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return domain.RenderUnchanged, fmt.Errorf("read %s: %w", targetPath, err)
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0o750); err != nil {
		return domain.RenderUnchanged, fmt.Errorf("create directory for %s: %w", targetPath, err)
	}
	if err := os.WriteFile(abs, content, 0o644); err != nil { //nolint:gosec // Generated sources are repository files
		return domain.RenderUnchanged, fmt.Errorf("write %s: %w", targetPath, err)
	}
	return domain.RenderChanged, nil
}

// substitute replaces every token whose name is present in data; unmatched
// tokens are left verbatim.
func substitute(tmpl string, data map[string]string) string {
	return tokenPattern.ReplaceAllStringFunc(tmpl, func(tok string) string {
		name := tok[2 : len(tok)-2]
		if v, ok := data[name]; ok {
			return v
		}
		return tok
	})
}
