// Package plan provides a read-only TUI that previews the actions a
// generation run would take, backed by the dry-run planner.
package plan

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"planforge/internal/usecase"
)

// Width of the action kind column. "ensure aggregation" is the widest kind.
const kindColumnWidth = 18

// Model is the plan TUI model.
// Fields are ordered to minimize memory padding.
type Model struct {
	// Dependencies
	gen *usecase.Generate

	// State
	actions  []usecase.PlannedAction
	err      error
	specPath string

	// Components
	keys   KeyMap
	styles Styles

	// Numeric state
	cursor int
	width  int
	height int

	// Boolean state
	loading bool
}

// New creates a new plan TUI model. specPath may be empty, in which case
// the planner falls back to the default taskspec location.
func New(gen *usecase.Generate, specPath string) *Model {
	return &Model{
		gen:      gen,
		specPath: specPath,
		keys:     DefaultKeyMap(),
		styles:   DefaultStyles(),
		loading:  true,
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return m.loadPlan()
}

// loadPlan runs the planner without touching the working tree.
func (m *Model) loadPlan() tea.Cmd {
	return func() tea.Msg {
		out, err := m.gen.Execute(context.Background(), usecase.GenerateInput{
			TaskSpecPath: m.specPath,
			DryRun:       true,
		})
		if err != nil {
			return MsgPlanLoaded{Err: err}
		}
		return MsgPlanLoaded{Actions: out.Actions}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case MsgPlanLoaded:
		m.loading = false
		m.err = msg.Err
		m.actions = msg.Actions
		if m.cursor >= len(m.actions) {
			m.cursor = len(m.actions) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil
	}

	return m, nil
}

// handleKey handles key events.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.actions)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.loadPlan()
	}

	return m, nil
}

// toCreate returns how many planned actions still have a missing target.
func (m *Model) toCreate() int {
	n := 0
	for _, a := range m.actions {
		if !a.Exists {
			n++
		}
	}
	return n
}

// View renders the TUI.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.styles.Loading.Render("Planning..."))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case len(m.actions) == 0:
		b.WriteString(m.styles.Muted.Render("Nothing to do."))
		b.WriteString("\n")
	default:
		b.WriteString(m.viewActionList())
	}

	b.WriteString(m.viewFooter())

	return indent(b.String(), 1)
}

// viewHeader renders the title line with the action summary.
func (m *Model) viewHeader() string {
	title := m.styles.Title.Render("Plan")
	if m.loading {
		return title
	}
	if m.err != nil {
		return title
	}
	summary := fmt.Sprintf("%d actions, %d to create", len(m.actions), m.toCreate())
	return title + "  " + m.styles.Subtitle.Render(summary)
}

// viewActionList renders one line per planned action.
func (m *Model) viewActionList() string {
	var b strings.Builder
	for i, action := range m.actions {
		b.WriteString(m.renderActionLine(action, i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

// renderActionLine renders a single action row.
func (m *Model) renderActionLine(action usecase.PlannedAction, selected bool) string {
	var cursor string
	if selected {
		cursor = m.styles.CursorSelected.Render("▸")
	} else {
		cursor = m.styles.CursorNormal.Render(" ")
	}

	kind := fmt.Sprintf("%-*s", kindColumnWidth, string(action.Kind))
	var kindStr string
	if selected {
		kindStr = m.styles.KindSelected.Render(kind)
	} else {
		kindStr = m.styles.Kind.Render(kind)
	}

	var targetStr string
	if selected {
		targetStr = m.styles.TargetSelected.Render(action.Target)
	} else {
		targetStr = m.styles.Target.Render(action.Target)
	}

	var badge string
	if action.Exists {
		badge = m.styles.BadgeExists.Render("exists")
	} else {
		badge = m.styles.BadgeCreate.Render("create")
	}

	return fmt.Sprintf("%s %s %s  %s", cursor, badge, kindStr, targetStr)
}

// viewFooter renders the footer with key hints.
func (m *Model) viewFooter() string {
	keyStyle := m.styles.FooterKey
	content := keyStyle.Render("j/k") + " nav  " +
		keyStyle.Render("r") + " refresh  " +
		keyStyle.Render("q") + " quit"
	return m.styles.Footer.Render(content)
}

// indent prefixes every line with n spaces.
func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}
