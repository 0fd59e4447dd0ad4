package domain

import (
	"path/filepath"
	"strings"
)

// Fixed layout of the plan directory and the generated tree.
const (
	// PlanDirName is the directory holding the taskspec, manifest and logs.
	PlanDirName = "plan"

	// SourceRoot is the tree prefix implementation units live under.
	SourceRoot = "src"

	// DescriptorExt is the file extension of build-unit descriptors.
	DescriptorExt = ".proj"

	// DefaultSolution is the aggregation descriptor ensured per run.
	DefaultSolution = "App.sln"

	// DefaultCommitMessage is used when a TaskSpec does not carry one.
	DefaultCommitMessage = "chore: automated scaffolding update"
)

// Built-in template names a TaskSpec may reference. The unit templates are
// also what the engine renders descriptors from when ensuring build units.
const (
	TemplateClass          = "classTemplate"
	TemplateTestClass      = "testClassTemplate"
	TemplateLibraryProject = "libraryProject"
	TemplateTestProject    = "testProject"
)

// TaskSpecPath returns the path to the taskspec document.
func TaskSpecPath(planDir string) string {
	return filepath.Join(planDir, "taskspec.json")
}

// ManifestPath returns the path to the touched-path manifest.
func ManifestPath(planDir string) string {
	return filepath.Join(planDir, "manifest.txt")
}

// LabelMapPath returns the path to the label-to-field mapping document.
func LabelMapPath(planDir string) string {
	return filepath.Join(planDir, "labelmap.yml")
}

// ConfigPath returns the path to the forge configuration file.
func ConfigPath(planDir string) string {
	return filepath.Join(planDir, "forge.toml")
}

// GlobalLogPath returns the path to the global log file.
func GlobalLogPath(planDir string) string {
	return filepath.Join(planDir, "logs", "forge.log")
}

// RunLogPath returns the path to the per-work-item log file.
func RunLogPath(planDir, workItemID string) string {
	return filepath.Join(planDir, "logs", "run-"+workItemID+".log")
}

// IsTestUnitPath classifies a build-unit path: a unit is a test unit if any
// path segment contains "tests", compared case-insensitively. Classification
// is derived from the path at each use, never stored.
func IsTestUnitPath(path string) bool {
	for _, seg := range strings.Split(path, "/") {
		if strings.Contains(strings.ToLower(seg), "tests") {
			return true
		}
	}
	return false
}

// UnitBaseName returns the descriptor file name without its extension,
// which is the name the registration tool knows the unit by.
func UnitBaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ReferenceInclude returns the include path for a reference from the unit
// descriptor at fromPath to the unit descriptor at toPath, slash-separated
// relative to fromPath's directory.
func ReferenceInclude(fromPath, toPath string) string {
	rel, err := filepath.Rel(filepath.Dir(fromPath), toPath)
	if err != nil {
		return toPath
	}
	return filepath.ToSlash(rel)
}
