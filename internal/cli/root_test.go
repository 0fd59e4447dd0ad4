package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCommand_HelpListsCommands(t *testing.T) {
	root := NewRootCommand(nil, "test-version")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--help"})

	err := root.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Generation Commands:")
	assert.Contains(t, out, "Integration Commands:")
	for _, name := range []string{"generate", "plan", "publish", "relay", "labels"} {
		assert.Contains(t, out, name)
	}
}

func TestNewRootCommand_Version(t *testing.T) {
	root := NewRootCommand(nil, "1.2.3")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--version"})

	err := root.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "1.2.3")
}

func TestNewRootCommand_UnknownCommand(t *testing.T) {
	root := NewRootCommand(nil, "test-version")
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"bogus"})

	err := root.Execute()

	assert.Error(t, err)
}
