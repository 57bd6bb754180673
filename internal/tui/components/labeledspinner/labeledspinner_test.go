package labeledspinner_test

import (
	"testing"
	"time"

	"github.com/alkime/quill/internal/tui/components/labeledspinner"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

//nolint:gochecknoinits // recommend for CI by bubbletea folks
func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestLabeledSpinner(t *testing.T) {
	m := labeledspinner.New(spinner.Dot, "Generating comments", "2024-01-05-hello.md", "ctrl+c to cancel")

	v0 := m.View()
	t.Run("view output", func(t *testing.T) {
		assert.Contains(t, v0, "Generating comments")
		assert.Contains(t, v0, "2024-01-05-hello.md")
		assert.Contains(t, v0, "ctrl+c to cancel")
		assert.Contains(t, v0, spinner.Dot.Frames[0])
	})

	t.Run("ticks advance frames", func(t *testing.T) {
		m, _ = m.Update(spinner.TickMsg{})
		assert.Contains(t, m.View(), spinner.Dot.Frames[1])
		m, _ = m.Update(spinner.TickMsg{})
		assert.Contains(t, m.View(), spinner.Dot.Frames[2])
	})

	t.Run("other messages are ignored", func(t *testing.T) {
		next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		assert.Nil(t, cmd)
		assert.Equal(t, m.View(), next.View())
	})

	t.Run("empty subtitle is skipped", func(t *testing.T) {
		bare := labeledspinner.New(spinner.Dot, "Working", "", "help")
		assert.NotContains(t, bare.View(), "\n\n\n")
	})

	t.Run("elapsed", func(t *testing.T) {
		assert.Equal(t, 2*time.Second, m.Elapsed(time.Now().Add(2500*time.Millisecond)))
	})
}
