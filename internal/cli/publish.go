package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"planforge/internal/app"
	"planforge/internal/usecase"
)

// newPublishCommand creates the publish command.
func newPublishCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Manifest string
		Message  string
		Branch   string
		Remote   string
	}

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Commit and push what the last run generated",
		Long: `Stage the paths recorded in the manifest, commit them and push.

The commit message and target branch default to the taskspec's values
(or the fixed default message when no taskspec is present); the remote
defaults to the configured one. When the manifest is missing or empty,
everything is staged instead. When nothing ends up staged, the commit
step is skipped without failing.

Pushing authenticates with the token in PLANFORGE_PUSH_TOKEN; without
it the push is attempted anonymously.

Examples:
  # Publish the last run
  planforge publish

  # Publish with an explicit message to a release branch
  planforge publish --message "Scaffold invoice module" --branch release/42`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.PublishUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.PublishInput{
				ManifestPath: opts.Manifest,
				Message:      opts.Message,
				Branch:       opts.Branch,
				Remote:       opts.Remote,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if !out.Committed {
				_, _ = fmt.Fprintln(w, "Nothing to commit; working tree matches the last publish.")
				return nil
			}
			_, _ = fmt.Fprintf(w, "Committed %s (%d paths staged)\n", shortHash(out.Hash), out.Staged)
			if out.Pushed {
				target := out.Remote
				if out.Branch != "" {
					target += " " + out.Branch
				}
				_, _ = fmt.Fprintf(w, "Pushed to %s\n", target)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Manifest, "manifest", "m", "", "Manifest path (default plan/manifest.txt)")
	cmd.Flags().StringVar(&opts.Message, "message", "", "Commit message (default from taskspec)")
	cmd.Flags().StringVarP(&opts.Branch, "branch", "b", "", "Branch to push to (default from taskspec)")
	cmd.Flags().StringVarP(&opts.Remote, "remote", "r", "", "Remote to push to (default from config)")

	return cmd
}

// shortHash abbreviates a commit hash for display.
func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
