// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"planforge/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// NopLogger is a domain.Logger that discards everything.
type NopLogger struct{}

// Ensure NopLogger implements domain.Logger.
var _ domain.Logger = NopLogger{}

// Debug discards the message.
func (NopLogger) Debug(string, string, string) {}

// Info discards the message.
func (NopLogger) Info(string, string, string) {}

// Warn discards the message.
func (NopLogger) Warn(string, string, string) {}

// Error discards the message.
func (NopLogger) Error(string, string, string) {}

// MockTaskSpecLoader is a test double for domain.TaskSpecLoader.
type MockTaskSpecLoader struct {
	Spec       *domain.TaskSpec
	Err        error
	LoadedPath string
}

// Ensure MockTaskSpecLoader implements domain.TaskSpecLoader.
var _ domain.TaskSpecLoader = (*MockTaskSpecLoader)(nil)

// Load records the path and returns the configured spec or error.
func (m *MockTaskSpecLoader) Load(path string) (*domain.TaskSpec, error) {
	m.LoadedPath = path
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Spec, nil
}

// MockRegistrar is a test double for domain.Registrar. CreateAggregation
// writes the descriptor file under Root, mimicking the external tool, so
// existence checks in the engine behave as they would in a real run.
// Fields are ordered to minimize memory padding.
type MockRegistrar struct {
	Outcomes    map[string]domain.RegisterOutcome
	RegisterErr map[string]error
	CreateErr   error
	Root        string
	Created     []string
	Registered  []string
}

// NewMockRegistrar creates a MockRegistrar rooted at root.
func NewMockRegistrar(root string) *MockRegistrar {
	return &MockRegistrar{
		Root:        root,
		Outcomes:    make(map[string]domain.RegisterOutcome),
		RegisterErr: make(map[string]error),
	}
}

// Ensure MockRegistrar implements domain.Registrar.
var _ domain.Registrar = (*MockRegistrar)(nil)

// CreateAggregation records the call and writes an empty descriptor file.
func (m *MockRegistrar) CreateAggregation(solution string) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.Created = append(m.Created, solution)
	abs := filepath.Join(m.Root, filepath.FromSlash(solution))
	if err := os.MkdirAll(filepath.Dir(abs), 0o750); err != nil {
		return err
	}
	return os.WriteFile(abs, []byte("Microsoft Visual Studio Solution File, Format Version 12.00\n"), 0o644)
}

// Register records the call and returns the configured outcome or error.
func (m *MockRegistrar) Register(_, unitPath string) (domain.RegisterOutcome, error) {
	if err := m.RegisterErr[unitPath]; err != nil {
		return domain.Registered, err
	}
	m.Registered = append(m.Registered, unitPath)
	if outcome, ok := m.Outcomes[unitPath]; ok {
		return outcome, nil
	}
	return domain.Registered, nil
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config  *domain.Config
	LoadErr error
}

// NewMockConfigLoader creates a MockConfigLoader with default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{Config: domain.NewDefaultConfig()}
}

// Ensure MockConfigLoader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*MockConfigLoader)(nil)

// Load returns the configured config or error.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// MockPublisher is a test double for domain.Publisher.
type MockPublisher struct {
	Result *domain.PublishResult
	Err    error
	Opts   domain.PublishOptions
	Called bool
}

// Ensure MockPublisher implements domain.Publisher.
var _ domain.Publisher = (*MockPublisher)(nil)

// Publish records the options and returns the configured result or error.
func (m *MockPublisher) Publish(_ context.Context, opts domain.PublishOptions) (*domain.PublishResult, error) {
	m.Called = true
	m.Opts = opts
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result != nil {
		return m.Result, nil
	}
	return &domain.PublishResult{}, nil
}

// MockDispatcher is a test double for domain.Dispatcher.
type MockDispatcher struct {
	Event  *domain.WorkItemEvent
	Err    error
	Status int
}

// Ensure MockDispatcher implements domain.Dispatcher.
var _ domain.Dispatcher = (*MockDispatcher)(nil)

// Dispatch records the event and returns the configured status or error.
func (m *MockDispatcher) Dispatch(_ context.Context, event *domain.WorkItemEvent) (int, error) {
	m.Event = event
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Status, nil
}

// MockLabelMapLoader is a test double for domain.LabelMapLoader.
type MockLabelMapLoader struct {
	LabelMap   *domain.LabelMap
	Err        error
	LoadedPath string
}

// Ensure MockLabelMapLoader implements domain.LabelMapLoader.
var _ domain.LabelMapLoader = (*MockLabelMapLoader)(nil)

// Load records the path and returns the configured map or error.
func (m *MockLabelMapLoader) Load(path string) (*domain.LabelMap, error) {
	m.LoadedPath = path
	if m.Err != nil {
		return nil, m.Err
	}
	return m.LabelMap, nil
}
