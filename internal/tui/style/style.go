// Package style defines lipgloss styles for the TUI.
package style

import "github.com/charmbracelet/lipgloss"

// Variable names omit the "Style" suffix since they're accessed via the
// package name (style.Title, not style.TitleStyle).
var (
	// Title is used for headers.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205"))

	// Subtitle is used for secondary text.
	Subtitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	Success = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	Error = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	// Cursor marks the highlighted row in a list.
	Cursor = lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)

	// Selected is the highlighted row text.
	Selected = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true)

	// Help is used for keyboard shortcut hints.
	Help = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	// Persona is used for comment author headings.
	Persona = lipgloss.NewStyle().
		Foreground(lipgloss.Color("63")).
		Bold(true)

	// Muted is used for de-emphasized text such as file paths.
	Muted = lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))
)
