package commenting_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alkime/quill/internal/comments"
	"github.com/alkime/quill/internal/tui/commenting"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:gochecknoinits // recommend for CI by bubbletea folks
func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func waitFor(t *testing.T, tm *teatest.TestModel, substr string) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), func(buf []byte) bool {
		return bytes.Contains(buf, []byte(substr))
	}, teatest.WithCheckInterval(50*time.Millisecond), teatest.WithDuration(3*time.Second))
}

func finalModel(t *testing.T, tm *teatest.TestModel) *commenting.Model {
	t.Helper()
	fm := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second))
	m, ok := fm.(*commenting.Model)
	require.True(t, ok)

	return m
}

func TestCommenting_Success(t *testing.T) {
	want := []comments.Comment{
		{Persona: "Tech Enthusiast", Text: "Love the detail here."},
		{Persona: "Skeptic", Text: "Where are the sources?"},
	}

	run := func(context.Context) ([]comments.Comment, error) { return want, nil }

	tm := teatest.NewTestModel(t, commenting.New(t.Context(), "2024-01-05-hello.md", run),
		teatest.WithInitialTermSize(80, 24))
	waitFor(t, tm, "Added 2 comments to 2024-01-05-hello.md")

	got, err := finalModel(t, tm).Result()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCommenting_Failure(t *testing.T) {
	run := func(context.Context) ([]comments.Comment, error) {
		return nil, errors.New("model offline")
	}

	tm := teatest.NewTestModel(t, commenting.New(t.Context(), "post.md", run),
		teatest.WithInitialTermSize(80, 24))
	waitFor(t, tm, "model offline")

	_, err := finalModel(t, tm).Result()
	assert.EqualError(t, err, "model offline")
}

func TestCommenting_Cancel(t *testing.T) {
	run := func(ctx context.Context) ([]comments.Comment, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	tm := teatest.NewTestModel(t, commenting.New(t.Context(), "post.md", run),
		teatest.WithInitialTermSize(80, 24))
	waitFor(t, tm, "Generating comments")

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

	_, err := finalModel(t, tm).Result()
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short text", commenting.Preview("short\n  text", 20))
	assert.Equal(t, "abcde...", commenting.Preview("abcdefgh", 5))
	assert.Equal(t, "héllo", commenting.Preview("héllo", 5))
}
