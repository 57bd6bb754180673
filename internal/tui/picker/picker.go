// Package picker is a single-choice list model used to select a post.
package picker

import (
	"fmt"
	"strings"

	"github.com/alkime/quill/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// Model lists items and records which one the user picked.
type Model struct {
	title    string
	items    []string
	keys     keyMap
	cursor   int
	selected int
	done     bool
}

// New creates a picker over items.
func New(title string, items []string) *Model {
	return &Model{
		title:    title,
		items:    items,
		keys:     defaultKeyMap(),
		selected: -1,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	msg, ok := teaMsg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.done = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.items) == 0 {
			return m, nil
		}

		m.selected = m.cursor
		m.done = true

		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) View() string {
	if m.done {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(style.Title.Render(m.title))
	sb.WriteString("\n\n")

	if len(m.items) == 0 {
		sb.WriteString(style.Muted.Render("Nothing to choose from."))
		sb.WriteString("\n")
	}

	for i, item := range m.items {
		if i == m.cursor {
			fmt.Fprintf(&sb, "%s %s\n", style.Cursor.Render(">"), style.Selected.Render(item))
			continue
		}

		fmt.Fprintf(&sb, "  %s\n", item)
	}

	sb.WriteString("\n")
	sb.WriteString(style.Help.Render(helpLine(m.keys.Up, m.keys.Down, m.keys.Select, m.keys.Quit)))

	return sb.String()
}

// Selected returns the index of the chosen item, or false if the user quit.
func (m *Model) Selected() (int, bool) {
	return m.selected, m.selected >= 0
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}

	return strings.Join(parts, " • ")
}
