package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"planforge/internal/app"
	"planforge/internal/domain"
	"planforge/internal/usecase"
)

// newLabelsCommand creates the labels command.
func newLabelsCommand(c *app.Container) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "labels",
		Short: "Validate the work-item label map",
		Long: `Validate the YAML document mapping work-item labels to taskspec
fields.

Every violation is reported, not just the first: empty or duplicate
labels (compared case-insensitively) and fields that are not taskspec
fields. Any violation makes the command fail.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.ValidateLabelsUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ValidateLabelsInput{Path: file})
			if err != nil {
				return err
			}

			if len(out.Violations) > 0 {
				for _, v := range out.Violations {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "labelmap: %s\n", v)
				}
				return fmt.Errorf("%w: %d violation(s)", domain.ErrInvalidLabelMap, len(out.Violations))
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Label map OK: %d mapping(s)\n", out.Mappings)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Label map path (default plan/labelmap.yml)")

	return cmd
}
