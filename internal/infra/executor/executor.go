// Package executor provides command execution functionality.
package executor

import (
	"os/exec"

	"planforge/internal/domain"
)

// Client implements domain.CommandExecutor.
type Client struct{}

// NewClient creates a new command executor client.
func NewClient() *Client {
	return &Client{}
}

// Ensure Client implements domain.CommandExecutor interface.
var _ domain.CommandExecutor = (*Client)(nil)

// Execute runs the command and returns its combined output.
func (c *Client) Execute(cmd *domain.ExecCommand) ([]byte, error) {
	// #nosec G204 - cmd.Program and cmd.Args come from validated configuration
	execCmd := exec.Command(cmd.Program, cmd.Args...)
	if cmd.Dir != "" {
		execCmd.Dir = cmd.Dir
	}
	return execCmd.CombinedOutput()
}
