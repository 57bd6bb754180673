// Package commenting shows progress while comments are generated for a post
// and previews the result.
package commenting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alkime/quill/internal/comments"
	"github.com/alkime/quill/internal/tui/components/labeledspinner"
	"github.com/alkime/quill/internal/tui/style"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// PreviewWidth is the number of runes of each comment shown after generation.
const PreviewWidth = 80

// RunFunc generates and stores the comments.
type RunFunc func(ctx context.Context) ([]comments.Comment, error)

type doneMsg struct {
	comments []comments.Comment
	err      error
}

// Model runs a RunFunc in the background behind a spinner.
type Model struct {
	ctx     context.Context
	cancel  context.CancelFunc
	name    string
	run     RunFunc
	spinner labeledspinner.Model
	quit    key.Binding

	done     bool
	comments []comments.Comment
	err      error
}

// New creates a Model that will generate comments for the named post.
func New(ctx context.Context, name string, run RunFunc) *Model {
	ctx, cancel := context.WithCancel(ctx)

	return &Model{
		ctx:     ctx,
		cancel:  cancel,
		name:    name,
		run:     run,
		spinner: labeledspinner.New(spinner.Dot, "Generating comments", name, ""),
		quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("ctrl+c", "cancel"),
		),
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Init(), m.generate)
}

func (m *Model) generate() tea.Msg {
	generated, err := m.run(m.ctx)
	return doneMsg{comments: generated, err: err}
}

func (m *Model) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := teaMsg.(type) {
	case doneMsg:
		m.finish(msg.comments, msg.err)
		return m, tea.Quit

	case tea.KeyMsg:
		if key.Matches(msg, m.quit) {
			m.cancel()
			m.finish(nil, context.Canceled)

			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m *Model) finish(generated []comments.Comment, err error) {
	if m.done {
		return
	}

	m.done = true
	m.comments = generated
	m.err = err
	m.cancel()
}

func (m *Model) View() string {
	if !m.done {
		help := fmt.Sprintf("%s elapsed • %s to cancel", m.spinner.Elapsed(time.Now()), m.quit.Help().Key)
		return m.spinner.ViewWithHelp(help) + "\n"
	}

	if m.err != nil {
		return style.Error.Render(fmt.Sprintf("Failed to comment on %s: %v", m.name, m.err)) + "\n"
	}

	var sb strings.Builder

	sb.WriteString(style.Success.Render(fmt.Sprintf("Added %d comments to %s", len(m.comments), m.name)))
	sb.WriteString("\n\n")

	for _, c := range m.comments {
		fmt.Fprintf(&sb, "%s %s\n", style.Persona.Render(c.Persona+":"), Preview(c.Text, PreviewWidth))
	}

	return sb.String()
}

// Result returns the generated comments, or the error that stopped
// generation.
func (m *Model) Result() ([]comments.Comment, error) {
	return m.comments, m.err
}

// Preview flattens text to one line and cuts it to width runes.
func Preview(text string, width int) string {
	flat := strings.Join(strings.Fields(text), " ")

	runes := []rune(flat)
	if len(runes) <= width {
		return flat
	}

	return string(runes[:width]) + "..."
}
