package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
const (
	ColorHeader  = lipgloss.Color("99")
	ColorAccent  = lipgloss.Color("212")
	ColorMuted   = lipgloss.Color("241")
	ColorBorder  = lipgloss.Color("240")
	ColorWarning = lipgloss.Color("214")
)

// Shared styles.
//
//nolint:gochecknoglobals // lipgloss styles are immutable values shared across views.
var (
	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorHeader)

	TableHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		BorderBottom(true)

	SelectedRowStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))

	ActiveTabStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorAccent).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder(), true, true, false, true).
		BorderForeground(ColorAccent)

	InactiveTabStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder(), true, true, false, true).
		BorderForeground(ColorBorder)

	HelpStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	StatusErrorStyle = lipgloss.NewStyle().Foreground(ColorWarning)

	EmptyStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true).
		Padding(1, 2)
)
