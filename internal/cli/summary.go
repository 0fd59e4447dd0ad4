package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"planforge/internal/usecase"
)

// Styles for the post-run summary.
var (
	summaryTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981"))
	summaryLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	summaryValueStyle = lipgloss.NewStyle().Bold(true)
)

// printRunSummary writes the summary block after a completed run.
func printRunSummary(w io.Writer, out *usecase.GenerateOutput) {
	title := "Run complete"
	if out.WorkItemID != "" {
		title += " for work item " + out.WorkItemID
	}
	_, _ = fmt.Fprintln(w, summaryTitleStyle.Render(title))

	line := func(label, value string) {
		_, _ = fmt.Fprintf(w, "  %s %s\n",
			summaryLabelStyle.Render(fmt.Sprintf("%-16s", label)),
			summaryValueStyle.Render(value))
	}

	line("units created", strconv.Itoa(out.UnitsCreated))
	registered := strconv.Itoa(out.Registered)
	if out.AlreadyRegistered > 0 {
		registered += fmt.Sprintf(" (%d already present)", out.AlreadyRegistered)
	}
	line("registered", registered)
	line("files changed", strconv.Itoa(out.FilesChanged))
	line("files unchanged", strconv.Itoa(out.FilesUnchanged))
	line("manifest", out.ManifestPath)
}

// printPlan writes one plain line per planned action, prefixed with
// whether the run would create the target or leave it alone.
func printPlan(w io.Writer, actions []usecase.PlannedAction) {
	if len(actions) == 0 {
		_, _ = fmt.Fprintln(w, "Nothing to do.")
		return
	}
	for _, a := range actions {
		state := "create"
		if a.Exists {
			state = "exists"
		}
		_, _ = fmt.Fprintf(w, "%-6s  %-18s  %s\n", state, a.Kind, a.Target)
	}
}
