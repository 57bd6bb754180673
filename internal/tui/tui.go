// Package tui runs the interactive terminal screens used by the quill CLI.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/alkime/quill/internal/comments"
	"github.com/alkime/quill/internal/tui/commenting"
	"github.com/alkime/quill/internal/tui/picker"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the user leaves a screen without choosing.
var ErrCancelled = errors.New("cancelled")

// PickPost asks the user to choose one of names and returns its index.
func PickPost(names []string) (int, error) {
	m := picker.New("Choose a post to comment on", names)

	if _, err := tea.NewProgram(m).Run(); err != nil {
		return 0, fmt.Errorf("failed to run post picker: %w", err)
	}

	idx, ok := m.Selected()
	if !ok {
		return 0, ErrCancelled
	}

	return idx, nil
}

// GenerateComments runs fn behind a spinner and returns its result.
func GenerateComments(ctx context.Context, name string, fn commenting.RunFunc) ([]comments.Comment, error) {
	m := commenting.New(ctx, name, fn)

	if _, err := tea.NewProgram(m).Run(); err != nil {
		return nil, fmt.Errorf("failed to run comment generation: %w", err)
	}

	return m.Result()
}
