package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planforge/internal/app"
	"planforge/internal/domain"
	"planforge/internal/testutil"
)

// newPublishTestContainer wires a container around a mock publisher. The
// taskspec loader reports a missing file so commit defaults apply.
func newPublishTestContainer(publisher *testutil.MockPublisher) *app.Container {
	c := app.NewWithDeps(
		app.Config{PlanDir: "plan"},
		&testutil.MockTaskSpecLoader{Err: domain.ErrTaskSpecNotFound},
		nil,
		nil,
		nil,
		testutil.NopLogger{},
	)
	c.Publisher = publisher
	c.ConfigLoader = testutil.NewMockConfigLoader()
	return c
}

func TestNewPublishCommand_CommitAndPush(t *testing.T) {
	// Setup
	publisher := &testutil.MockPublisher{Result: &domain.PublishResult{
		Hash:      "0123456789abcdef",
		Staged:    3,
		Committed: true,
		Pushed:    true,
	}}
	c := newPublishTestContainer(publisher)

	cmd := newPublishCommand(c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--message", "Scaffold invoices", "--branch", "feature/42"})

	// Execute
	err := cmd.Execute()

	// Assert
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Committed 01234567 (3 paths staged)")
	assert.Contains(t, buf.String(), "Pushed to origin feature/42")
	assert.Equal(t, "Scaffold invoices", publisher.Opts.Message)
	assert.Equal(t, "feature/42", publisher.Opts.Branch)
}

func TestNewPublishCommand_NothingToCommit(t *testing.T) {
	publisher := &testutil.MockPublisher{Result: &domain.PublishResult{Committed: false}}
	c := newPublishTestContainer(publisher)

	cmd := newPublishCommand(c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--message", "anything"})

	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Nothing to commit")
}

func TestNewPublishCommand_ManifestAndRemoteFlags(t *testing.T) {
	publisher := &testutil.MockPublisher{Result: &domain.PublishResult{Committed: false}}
	c := newPublishTestContainer(publisher)

	cmd := newPublishCommand(c)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--manifest", "out/list.txt", "--remote", "backup", "--message", "x"})

	err := cmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "out/list.txt", publisher.Opts.ManifestPath)
	assert.Equal(t, "backup", publisher.Opts.Remote)
}

func TestNewPublishCommand_PublisherError(t *testing.T) {
	publisher := &testutil.MockPublisher{Err: domain.ErrNotGitRepository}
	c := newPublishTestContainer(publisher)

	cmd := newPublishCommand(c)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--message", "x"})

	err := cmd.Execute()

	assert.ErrorIs(t, err, domain.ErrNotGitRepository)
}
