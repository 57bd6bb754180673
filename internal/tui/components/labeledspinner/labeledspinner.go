// Package labeledspinner renders a spinner next to a title, with a subtitle
// and a help line underneath.
package labeledspinner

import (
	"fmt"
	"strings"
	"time"

	"github.com/alkime/quill/internal/tui/style"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Model displays a spinner with title, subtitle, and help text.
type Model struct {
	Spinner  spinner.Model
	Title    string
	Subtitle string
	Help     string

	started time.Time
}

// New creates a labeled spinner. The elapsed clock starts now.
func New(s spinner.Spinner, title, subtitle, help string) Model {
	sp := spinner.New()
	sp.Spinner = s

	return Model{
		Spinner:  sp,
		Title:    title,
		Subtitle: subtitle,
		Help:     help,
		started:  time.Now(),
	}
}

// Init returns the initial tick command.
func (ls Model) Init() tea.Cmd {
	return ls.Spinner.Tick
}

// Update advances the spinner on tick messages and ignores everything else.
func (ls Model) Update(teaMsg tea.Msg) (Model, tea.Cmd) {
	tickMsg, ok := teaMsg.(spinner.TickMsg)
	if !ok {
		return ls, nil
	}

	var cmd tea.Cmd
	ls.Spinner, cmd = ls.Spinner.Update(tickMsg)

	return ls, cmd
}

// Elapsed reports the time since the spinner was created, in whole seconds.
func (ls Model) Elapsed(now time.Time) time.Duration {
	return now.Sub(ls.started).Truncate(time.Second)
}

func (ls Model) View() string {
	return ls.ViewWithHelp(ls.Help)
}

// ViewWithHelp renders with help text computed by the caller.
func (ls Model) ViewWithHelp(help string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s %s\n\n", ls.Spinner.View(), style.Title.Render(ls.Title))

	if ls.Subtitle != "" {
		sb.WriteString(style.Subtitle.Render(ls.Subtitle))
		sb.WriteString("\n\n")
	}

	sb.WriteString(style.Help.Render(help))

	return sb.String()
}
