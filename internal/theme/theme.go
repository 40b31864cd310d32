package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Brand         *lipgloss.Style
	Hints         *lipgloss.Style
	ActiveBorder  *lipgloss.Style
	Border        *lipgloss.Style
	PanelTitle    *lipgloss.Style
	Loading       *lipgloss.Style
	Item          *lipgloss.Style
	ItemHint      *lipgloss.Style
	SelectedItem  *lipgloss.Style
	Playing       *lipgloss.Style
	TrackName     *lipgloss.Style
	Artist        *lipgloss.Style
	Muted         *lipgloss.Style
	Info          *lipgloss.Style
	Error         *lipgloss.Style
	SearchPrompt  *lipgloss.Style
	SearchQuery   *lipgloss.Style
	Cursor        *lipgloss.Style
	Enabled       *lipgloss.Style
	Volume        *lipgloss.Style
	ProgressFill  string
	ProgressEmpty string
}

var defaultStyles = Styles{
	Brand: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
	),
	Hints: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	ActiveBorder: ptr(
		lipgloss.NewStyle().BorderForeground(lipgloss.Color("6")),
	),
	Border: ptr(
		lipgloss.NewStyle().BorderForeground(lipgloss.Color("240")),
	),
	PanelTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Loading: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Italic(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	),
	ItemHint: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6")).Bold(true),
	),
	Playing: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
	),
	TrackName: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	),
	Artist: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	),
	Muted: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	SearchPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
	),
	SearchQuery: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	),
	Enabled: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	),
	Volume: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	),
	ProgressFill:  "#00afaf",
	ProgressEmpty: "#3a3a3a",
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
