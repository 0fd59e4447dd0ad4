// Package domain contains core business entities and interfaces.
package domain

import "strings"

// TaskSpec represents a single generation request: which build units to
// ensure, which source and test files to render, and how the result is
// committed. It is read once at process start and immutable afterwards.
// Fields are ordered to minimize memory padding.
type TaskSpec struct {
	Projects      []string   `json:"projectsToEnsure"`        // Build-unit descriptor paths, in order
	Files         []FileSpec `json:"files"`                   // Source files to render, in order
	Tests         []TestSpec `json:"tests"`                   // Test files to render, in order
	WorkItemID    string     `json:"workItemId"`              // Originating work item (log scope)
	FeatureBranch string     `json:"featureBranch"`           // Branch the publishing step targets
	CommitMessage string     `json:"commitMessage,omitempty"` // Commit message (defaulted by Normalize)
}

// FileSpec names a source file to render from a template.
type FileSpec struct {
	Path     string `json:"path"`
	Template string `json:"template"`
}

// TestSpec names a test file to render from a template with substitution data.
type TestSpec struct {
	Data     map[string]string `json:"data,omitempty"`
	Path     string            `json:"path"`
	Template string            `json:"template"`
}

// Normalize de-duplicates the build-unit list case-insensitively (first
// occurrence wins, original casing preserved) and fills in the default
// commit message. It runs once, before any side effect.
func (s *TaskSpec) Normalize() {
	s.Projects = dedupeFold(s.Projects)
	if strings.TrimSpace(s.CommitMessage) == "" {
		s.CommitMessage = DefaultCommitMessage
	}
}

// TestUnits returns the build units classified as test units, in order.
func (s *TaskSpec) TestUnits() []string {
	var units []string
	for _, p := range s.Projects {
		if IsTestUnitPath(p) {
			units = append(units, p)
		}
	}
	return units
}

// MainUnit infers the descriptor path of the implementation unit the test
// units belong to. The first file spec under the source root names the unit
// by its second path segment; the descriptor is <root>/<name>/<name>.proj.
// Reports false when no file spec qualifies. At most one main unit exists
// per run.
func (s *TaskSpec) MainUnit() (string, bool) {
	for _, f := range s.Files {
		segs := strings.Split(f.Path, "/")
		if len(segs) < 2 || !strings.EqualFold(segs[0], SourceRoot) {
			continue
		}
		name := segs[1]
		return SourceRoot + "/" + name + "/" + name + DescriptorExt, true
	}
	return "", false
}

// dedupeFold removes case-insensitive duplicates, keeping first occurrences
// with their original casing.
func dedupeFold(paths []string) []string {
	if len(paths) == 0 {
		return paths
	}
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		key := strings.ToLower(p)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}
