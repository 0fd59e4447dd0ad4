// Package cli provides the command-line interface for planforge.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"planforge/internal/app"
)

// Command group IDs.
const (
	groupGeneration  = "generation"
	groupIntegration = "integration"
)

// NewRootCommand creates the root command for planforge.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "planforge",
		Short: "Idempotent project scaffolding from work-item task specs",
		Long: `planforge turns a task spec produced from a work item into project
scaffolding: build unit descriptors, registered units, rendered source
files and their tests. Every step checks on-disk state first, so a run
can be repeated safely and only fills in what is missing.

A run records everything it touched in plan/manifest.txt; the publish
command stages exactly those paths, commits and pushes them.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil {
				return nil
			}

			cfg, err := c.ConfigLoader.Load()
			if err != nil {
				// Surfaced by the command that needs the config
				return nil
			}

			for _, w := range cfg.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
	}

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupGeneration, Title: "Generation Commands:"},
		&cobra.Group{ID: groupIntegration, Title: "Integration Commands:"},
	)

	// Generation commands
	generateCmd := newGenerateCommand(c)
	generateCmd.GroupID = groupGeneration

	planCmd := newPlanCommand(c)
	planCmd.GroupID = groupGeneration

	// Integration commands
	publishCmd := newPublishCommand(c)
	publishCmd.GroupID = groupIntegration

	relayCmd := newRelayCommand(c)
	relayCmd.GroupID = groupIntegration

	labelsCmd := newLabelsCommand(c)
	labelsCmd.GroupID = groupIntegration

	// Add subcommands
	root.AddCommand(
		generateCmd,
		planCmd,
		publishCmd,
		relayCmd,
		labelsCmd,
	)

	return root
}
