package service

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alkime/quill/internal/apperr"
	"github.com/alkime/quill/internal/comments"
	"github.com/alkime/quill/internal/content"
	"github.com/alkime/quill/internal/llm"
	"github.com/alkime/quill/internal/persona"
	"github.com/alkime/quill/internal/post"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type firstSource struct{}

func (firstSource) IntN(int) int { return 0 }

func newTestService(t *testing.T, dir string, completer llm.Completer) *Service {
	t.Helper()

	reg, err := persona.NewRegistry(
		persona.Persona{Name: "Skeptic", Description: "doubts"},
		persona.Persona{Name: "Optimist", Description: "cheers"},
		persona.Persona{Name: "Pedant", Description: "corrects"},
	)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := New(
		post.NewStore(dir),
		comments.NewGenerator(reg, completer, comments.WithSource(firstSource{}), comments.WithLogger(logger)),
		content.NewWriter(completer),
		logger,
	)
	svc.now = func() time.Time { return time.Date(2024, 1, 5, 12, 0, 0, 0, time.Local) }

	return svc
}

func countingCompleter(calls *int32) llm.Completer {
	return llm.CompleterFunc(func(context.Context, string) (string, error) {
		n := atomic.AddInt32(calls, 1)
		return "reply " + string(rune('0'+n)), nil
	})
}

func writeFile(t *testing.T, dir, name, data string) {
	t.Helper()
	//nolint:gosec // Test file
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644))
}

func TestCommentOnPost(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "---\ntitle: A\n---\nBody A")

	var calls int32
	svc := newTestService(t, dir, countingCompleter(&calls))

	got, err := svc.CommentOnPost(context.Background(), "a.md", 2)
	require.NoError(t, err)

	assert.Equal(t, []comments.Comment{
		{Persona: "Skeptic", Text: "reply 1"},
		{Persona: "Optimist", Text: "reply 2"},
	}, got)

	data, err := os.ReadFile(filepath.Join(dir, "a.md"))
	require.NoError(t, err)
	assert.Equal(t, "---\ntitle: A\n---\nBody A\n\n## Comments\n\n### Skeptic\nreply 1\n\n### Optimist\nreply 2\n", string(data))
}

func TestCommentOnPost_EmptyBody(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.md", "---\ntitle: Empty\n---\n\n")

	var calls int32
	svc := newTestService(t, dir, countingCompleter(&calls))

	_, err := svc.CommentOnPost(context.Background(), "empty.md", 1)
	assert.ErrorIs(t, err, apperr.ErrEmptyContent)
	assert.Zero(t, calls)
}

func TestCommentOnPost_FailureLeavesFileUntouched(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "---\ntitle: A\n---\nBody A")

	svc := newTestService(t, dir, llm.CompleterFunc(func(context.Context, string) (string, error) {
		return "", apperr.ErrServiceUnavailable
	}))

	_, err := svc.CommentOnPost(context.Background(), "a.md", 2)
	require.ErrorIs(t, err, apperr.ErrServiceUnavailable)

	data, err := os.ReadFile(filepath.Join(dir, "a.md"))
	require.NoError(t, err)
	assert.Equal(t, "---\ntitle: A\n---\nBody A", string(data))
}

func TestDraft(t *testing.T) {
	var calls int32
	svc := newTestService(t, t.TempDir(), countingCompleter(&calls))

	body, got, err := svc.Draft(context.Background(), "Title", 2)
	require.NoError(t, err)

	assert.Equal(t, "reply 1", body)
	assert.Len(t, got, 2)
	assert.EqualValues(t, 3, calls)
}

func TestCreatePost(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "_posts")

	var calls int32
	svc := newTestService(t, dir, countingCompleter(&calls))

	path, err := svc.CreatePost(context.Background(), "My Great Post", "", 1)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2024-01-05-my-great-post.md"), path)

	p, err := svc.Store().Load(filepath.Base(path))
	require.NoError(t, err)
	assert.Equal(t, "My Great Post", p.Title())
	assert.Equal(t, "post", p.Meta["layout"])
	assert.Contains(t, p.Body, "reply 1")
	assert.Contains(t, p.Frontmatter, "ai_comments:")
	assert.Contains(t, p.Frontmatter, "reply 2")
}

func TestCreatePost_WithBody(t *testing.T) {
	var calls int32
	svc := newTestService(t, t.TempDir(), countingCompleter(&calls))

	_, err := svc.CreatePost(context.Background(), "Mine", "Hand written.", 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, calls, "no draft call when body is supplied")
}

func TestPendingAndEnhance(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "---\ntitle: A\n---\nBody A")
	writeFile(t, dir, "b.md", "---\ntitle: B\n---\nBody B\n\n## Comments\n\n### X\ny\n")
	writeFile(t, dir, "c.md", "no frontmatter")
	writeFile(t, dir, "d.md", "---\ntitle: D\n---\n")

	var calls int32
	svc := newTestService(t, dir, countingCompleter(&calls))

	pending, err := svc.Pending()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md"}, pending)

	var done []string
	n, err := svc.Enhance(context.Background(), 1, func(name string) { done = append(done, name) })
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"a.md"}, done)

	pending, err = svc.Pending()
	require.NoError(t, err)
	assert.Empty(t, pending)
}
