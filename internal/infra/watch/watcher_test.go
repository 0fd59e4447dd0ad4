package watch

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"planforge/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, string) {}
func (nopLogger) Info(string, string, string)  {}
func (nopLogger) Warn(string, string, string)  {}
func (nopLogger) Error(string, string, string) {}

func TestWatcher_RunsOnSpecChange(t *testing.T) {
	// Setup
	planDir := t.TempDir()
	ran := make(chan struct{}, 1)
	watcher, err := New(planDir, nopLogger{}, func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, watcher.Start(context.Background()))
	defer watcher.Stop()

	// Execute
	specPath := domain.TaskSpecPath(planDir)
	require.NoError(t, os.WriteFile(specPath, []byte(`{"workItemId": 1}`), 0o644))

	// Assert
	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("run was not triggered by spec change")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	// Setup
	planDir := t.TempDir()
	ran := make(chan struct{}, 1)
	watcher, err := New(planDir, nopLogger{}, func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, watcher.Start(context.Background()))
	defer watcher.Stop()

	// Execute
	require.NoError(t, os.WriteFile(planDir+"/notes.txt", []byte("unrelated"), 0o644))

	// Assert
	select {
	case <-ran:
		t.Fatal("run was triggered by an unrelated file")
	case <-time.After(1 * time.Second):
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	// Setup
	watcher, err := New(t.TempDir(), nopLogger{}, func(context.Context) error { return nil })
	require.NoError(t, err)
	require.NoError(t, watcher.Start(context.Background()))

	// Execute and verify a second Stop does not panic or block.
	watcher.Stop()
	watcher.Stop()
}

func TestWatcher_StartFailsOnMissingDir(t *testing.T) {
	// Setup
	watcher, err := New("/nonexistent/plan/dir", nopLogger{}, func(context.Context) error { return nil })
	require.NoError(t, err)

	// Execute
	err = watcher.Start(context.Background())

	// Assert
	require.Error(t, err)
}
