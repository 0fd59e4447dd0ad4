package domain

import (
	"context"
	"time"
)

// TaskSpecLoader reads and parses a TaskSpec document.
type TaskSpecLoader interface {
	// Load reads the document at path. Returns ErrTaskSpecNotFound if the
	// file is absent; a parse failure is fatal and touches nothing.
	Load(path string) (*TaskSpec, error)
}

// RenderResult reports whether a render call wrote the target file.
type RenderResult int

// Render results.
const (
	RenderUnchanged RenderResult = iota
	RenderChanged
)

// String returns the human-readable result name.
func (r RenderResult) String() string {
	if r == RenderChanged {
		return "changed"
	}
	return "unchanged"
}

// Renderer materializes a named template at a target path.
type Renderer interface {
	// Render loads the named template, substitutes placeholder tokens
	// present in data and writes the output only if it differs from what is
	// on disk. Tokens absent from data stay verbatim. The caller records
	// the target path regardless of the result.
	Render(targetPath, templateName string, data map[string]string) (RenderResult, error)

	// HasTemplate reports whether a template is registered under name.
	HasTemplate(name string) bool
}

// RegisterOutcome distinguishes a fresh registration from the one expected
// repeat condition. Any other failure surfaces as an error instead.
type RegisterOutcome int

// Register outcomes.
const (
	Registered RegisterOutcome = iota
	AlreadyRegistered
)

// String returns the human-readable outcome name.
func (o RegisterOutcome) String() string {
	if o == AlreadyRegistered {
		return "already registered"
	}
	return "registered"
}

// Registrar wires build units into the aggregation unit via the external
// registration tool.
type Registrar interface {
	// CreateAggregation creates the aggregation descriptor. Failure is
	// fatal for the run.
	CreateAggregation(solution string) error

	// Register adds the build unit at unitPath to the aggregation
	// descriptor. AlreadyRegistered is reported when the tool indicates the
	// unit was registered before; every other non-zero result returns an
	// error carrying the captured output.
	Register(solution, unitPath string) (RegisterOutcome, error)
}

// CommandExecutor runs external commands.
type CommandExecutor interface {
	// Execute runs the command and returns its combined output.
	Execute(cmd *ExecCommand) ([]byte, error)
}

// ManifestWriter persists the touched-path list for the publishing step.
type ManifestWriter interface {
	// Write flushes the change set to path, one path per line, sorted,
	// overwriting any previous manifest. Called exactly once, at the very
	// end of a successful run.
	Write(path string, set *ChangeSet) error
}

// PublishOptions configures a publish run.
type PublishOptions struct {
	ManifestPath string // Manifest to stage from
	Message      string // Commit message
	Branch       string // Branch to push to (empty = current HEAD branch)
	Remote       string // Remote name
}

// PublishResult reports what a publish run did.
// Fields are ordered to minimize memory padding.
type PublishResult struct {
	Hash      string // Commit hash (empty if nothing was committed)
	Staged    int    // Number of paths staged
	Committed bool   // Whether a commit was created
	Pushed    bool   // Whether the push was performed
}

// Publisher stages the manifest's paths, commits and pushes them.
type Publisher interface {
	// Publish stages exactly the manifest's paths (everything if the
	// manifest is missing or empty), commits unless nothing is staged and
	// pushes the result. Skipping an empty commit is not an error.
	Publish(ctx context.Context, opts PublishOptions) (*PublishResult, error)
}

// Dispatcher forwards a normalized work-item event downstream.
type Dispatcher interface {
	// Dispatch sends the event to the repository-dispatch endpoint and
	// returns the downstream HTTP status code.
	Dispatch(ctx context.Context, event *WorkItemEvent) (int, error)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the configuration, falling back to defaults when the
	// config file is absent.
	Load() (*Config, error)
}

// LabelMapLoader reads and parses a label-to-field mapping document.
type LabelMapLoader interface {
	// Load reads the document at path. The result is parsed but not
	// validated; callers run Validate themselves.
	Load(path string) (*LabelMap, error)
}

// Logger records diagnostic messages, globally and per work item.
type Logger interface {
	// Debug logs a debug message.
	Debug(workItemID, category, msg string)

	// Info logs an info message.
	Info(workItemID, category, msg string)

	// Warn logs a warning message.
	Warn(workItemID, category, msg string)

	// Error logs an error message.
	Error(workItemID, category, msg string)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
