// Package content drafts blog posts and ideas with a completion client.
package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/alkime/quill/internal/apperr"
	"github.com/alkime/quill/internal/llm"
)

// Writer generates post drafts and ideas.
type Writer struct {
	completer llm.Completer
}

// NewWriter creates a writer backed by completer.
func NewWriter(completer llm.Completer) *Writer {
	return &Writer{
		completer: completer,
	}
}

// DraftPost writes a short blog post for title.
func (w *Writer) DraftPost(ctx context.Context, title string) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", fmt.Errorf("title: %w", apperr.ErrEmptyContent)
	}

	draft, err := w.completer.Complete(ctx, DraftPrompt(title))
	if err != nil {
		return "", fmt.Errorf("failed to draft post: %w", err)
	}

	return draft, nil
}

// Ideas returns blog post ideas about topic as the model wrote them.
func (w *Writer) Ideas(ctx context.Context, topic string) (string, error) {
	if strings.TrimSpace(topic) == "" {
		return "", fmt.Errorf("topic: %w", apperr.ErrEmptyContent)
	}

	ideas, err := w.completer.Complete(ctx, IdeasPrompt(topic))
	if err != nil {
		return "", fmt.Errorf("failed to generate ideas: %w", err)
	}

	return ideas, nil
}
