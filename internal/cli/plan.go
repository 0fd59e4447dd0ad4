package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"planforge/internal/app"
	"planforge/internal/tui/plan"
)

// launchPlanTUIFunc is a function variable for launching the plan TUI,
// allowing it to be mocked in tests.
var launchPlanTUIFunc = launchPlanTUI

// newPlanCommand creates the plan command.
func newPlanCommand(c *app.Container) *cobra.Command {
	var taskSpecPath string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Preview the actions a generation run would take",
		Long: `Open an interactive preview of the actions a generation run would
take, each marked with whether its target already exists on disk.

The preview is read-only: it shares the dry-run planner and performs no
side effect.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchPlanTUIFunc(c, taskSpecPath)
		},
	}

	cmd.Flags().StringVarP(&taskSpecPath, "taskspec", "t", "", "Taskspec document path (default plan/taskspec.json)")

	return cmd
}

// launchPlanTUI launches the plan preview TUI.
func launchPlanTUI(c *app.Container, taskSpecPath string) error {
	model := plan.New(c.GenerateUseCase(), taskSpecPath)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
