// Package registrar drives the external registration tool that wires build
// units into the aggregation unit.
package registrar

import (
	"fmt"
	"path/filepath"
	"strings"

	"planforge/internal/domain"
)

// Ensure Client implements domain.Registrar.
var _ domain.Registrar = (*Client)(nil)

// Client implements domain.Registrar by invoking a dotnet-style tool.
type Client struct {
	exec    domain.CommandExecutor
	program string
	dir     string
}

// NewClient creates a registrar running program inside dir.
func NewClient(exec domain.CommandExecutor, program, dir string) *Client {
	return &Client{exec: exec, program: program, dir: dir}
}

// CreateAggregation creates the aggregation descriptor. Failure is fatal for
// the run, so the captured tool output rides along in the error.
func (c *Client) CreateAggregation(solution string) error {
	args := []string{"new", "sln", "--name", domain.UnitBaseName(solution)}
	if dir := filepath.Dir(filepath.FromSlash(solution)); dir != "." {
		args = append(args, "--output", dir)
	}

	out, err := c.exec.Execute(&domain.ExecCommand{
		Program: c.program,
		Dir:     c.dir,
		Args:    args,
	})
	if err != nil {
		return fmt.Errorf("create aggregation %s: %w: %s", solution, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Register adds the build unit at unitPath to the aggregation descriptor.
// The one expected repeat condition, a unit that is already part of the
// solution, is reported as AlreadyRegistered whether the tool signals it via
// exit status or just a message; every other failure carries the captured
// output.
func (c *Client) Register(solution, unitPath string) (domain.RegisterOutcome, error) {
	out, err := c.exec.Execute(&domain.ExecCommand{
		Program: c.program,
		Dir:     c.dir,
		Args:    []string{"sln", filepath.FromSlash(solution), "add", filepath.FromSlash(unitPath)},
	})

	already := strings.Contains(strings.ToLower(string(out)), "already")
	if err != nil {
		if already {
			return domain.AlreadyRegistered, nil
		}
		return domain.Registered, fmt.Errorf("%w: %s: %s", domain.ErrRegistrationFailed, unitPath, strings.TrimSpace(string(out)))
	}
	if already {
		return domain.AlreadyRegistered, nil
	}
	return domain.Registered, nil
}
