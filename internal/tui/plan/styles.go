package plan

import "github.com/charmbracelet/lipgloss"

// Colors used in the plan TUI.
var (
	ColorPrimary = lipgloss.Color("#7C3AED") // Purple
	ColorCreate  = lipgloss.Color("#F59E0B") // Amber
	ColorExists  = lipgloss.Color("#10B981") // Green
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorMuted   = lipgloss.Color("#9CA3AF") // Light gray
)

// Styles holds the styles for the plan TUI.
type Styles struct {
	Title          lipgloss.Style
	Subtitle       lipgloss.Style
	CursorSelected lipgloss.Style
	CursorNormal   lipgloss.Style
	Kind           lipgloss.Style
	KindSelected   lipgloss.Style
	Target         lipgloss.Style
	TargetSelected lipgloss.Style
	BadgeCreate    lipgloss.Style
	BadgeExists    lipgloss.Style
	Loading        lipgloss.Style
	Error          lipgloss.Style
	Muted          lipgloss.Style
	Footer         lipgloss.Style
	FooterKey      lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),
		Subtitle: lipgloss.NewStyle().
			Foreground(ColorMuted),
		CursorSelected: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true),
		CursorNormal: lipgloss.NewStyle(),
		Kind: lipgloss.NewStyle().
			Foreground(ColorMuted),
		KindSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true),
		Target: lipgloss.NewStyle(),
		TargetSelected: lipgloss.NewStyle().
			Bold(true),
		BadgeCreate: lipgloss.NewStyle().
			Foreground(ColorCreate).
			Bold(true),
		BadgeExists: lipgloss.NewStyle().
			Foreground(ColorExists),
		Loading: lipgloss.NewStyle().
			Foreground(ColorCreate).
			Italic(true),
		Error: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(ColorMuted),
		Footer: lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1),
		FooterKey: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true),
	}
}
