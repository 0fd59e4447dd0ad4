package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"planforge/internal/app"
	"planforge/internal/usecase"
)

// newGenerateCommand creates the generate command.
func newGenerateCommand(c *app.Container) *cobra.Command {
	var opts struct {
		TaskSpec string
		DryRun   bool
		Watch    bool
	}

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Run generation for the current taskspec",
		Long: `Run a full generation pass for a taskspec.

The run ensures the aggregation descriptor and every build unit exist,
registers each unit with the external registration tool, links the first
test unit to its implementation unit, renders source files and tests,
and finally writes the manifest of touched paths.

Every step checks on-disk state first: existing descriptors are left
alone, rendered files are only rewritten when their content changed, and
registering an already-registered unit is not an error. Re-running after
a failure is always safe.

Error conditions:
- Missing taskspec: exit code 2
- Aggregation or registration failure: run aborts, no manifest written

Examples:
  # Generate from plan/taskspec.json
  planforge generate

  # Preview without touching the working tree
  planforge generate --dry-run

  # Re-run whenever the taskspec changes
  planforge generate --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Watch {
				if opts.DryRun {
					return errors.New("--watch cannot be combined with --dry-run")
				}
				return runWatch(cmd, c, opts.TaskSpec)
			}

			uc := c.GenerateUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.GenerateInput{
				TaskSpecPath: opts.TaskSpec,
				DryRun:       opts.DryRun,
			})
			if err != nil {
				return err
			}

			if opts.DryRun {
				printPlan(cmd.OutOrStdout(), out.Actions)
				return nil
			}
			printRunSummary(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.TaskSpec, "taskspec", "t", "", "Taskspec document path (default plan/taskspec.json)")
	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "Report the actions a run would take without writing anything")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-run generation whenever the taskspec changes")

	return cmd
}

// runWatch blocks, re-running generation on every taskspec change until
// the process is interrupted. A failing run is reported and watching
// continues; the next change gets a fresh, independent run.
func runWatch(cmd *cobra.Command, c *app.Container, taskSpecPath string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Watching for taskspec changes (Ctrl-C to stop)")

	return c.WatchTaskSpec(ctx, func(runCtx context.Context) error {
		out, err := c.GenerateUseCase().Execute(runCtx, usecase.GenerateInput{
			TaskSpecPath: taskSpecPath,
		})
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "generate: %v\n", err)
			return err
		}
		printRunSummary(cmd.OutOrStdout(), out)
		return nil
	})
}
