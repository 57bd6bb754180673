// Package comments generates persona-voiced comments on blog posts.
package comments

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/alkime/quill/internal/apperr"
	"github.com/alkime/quill/internal/llm"
	"github.com/alkime/quill/internal/persona"
)

// DefaultCount is the number of comments generated per post.
const DefaultCount = 3

// Comment is one generated comment attributed to a persona.
type Comment struct {
	Persona string `json:"persona" yaml:"persona"`
	Text    string `json:"comment" yaml:"comment"`
}

// Source picks a random index in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Generator samples personas and asks the completer for one comment each.
type Generator struct {
	registry  *persona.Registry
	completer llm.Completer
	source    Source
	logger    *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithSource sets the random source used for persona sampling.
// The source must be safe for concurrent use if the Generator is shared.
func WithSource(src Source) Option {
	return func(g *Generator) {
		g.source = src
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator creates a Generator over the given registry and completer.
func NewGenerator(registry *persona.Registry, completer llm.Completer, opts ...Option) *Generator {
	g := &Generator{
		registry:  registry,
		completer: completer,
		source:    globalSource{},
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate returns count comments on postContent, each from a distinct
// persona, in sampling order. Any completion failure aborts the whole call.
func (g *Generator) Generate(ctx context.Context, postContent string, count int) ([]Comment, error) {
	if strings.TrimSpace(postContent) == "" {
		return nil, apperr.ErrEmptyContent
	}

	if count > g.registry.Len() {
		return nil, fmt.Errorf("%w: requested %d comments but only %d personas exist",
			apperr.ErrInsufficientPersonas, count, g.registry.Len())
	}

	selected := g.sample(count)
	out := make([]Comment, 0, len(selected))

	for _, p := range selected {
		g.logger.Debug("Generating comment", "persona", p.Name)

		text, err := g.completer.Complete(ctx, Prompt(p, postContent))
		if err != nil {
			return nil, fmt.Errorf("failed to generate comment as %s: %w", p.Name, err)
		}

		out = append(out, Comment{Persona: p.Name, Text: text})
	}

	g.logger.Info("Generated comments", "count", len(out))

	return out, nil
}

// sample draws count personas without replacement using a partial
// Fisher-Yates shuffle.
func (g *Generator) sample(count int) []persona.Persona {
	if count <= 0 {
		return nil
	}

	pool := g.registry.All()
	for i := 0; i < count; i++ {
		j := i + g.source.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	return pool[:count]
}

// Prompt builds the comment prompt for one persona.
func Prompt(p persona.Persona, postContent string) string {
	return fmt.Sprintf("As a %s (%s), comment on this post:\n\n%s", p.Name, p.Description, postContent)
}

// Format renders comments as plain "persona: text" lines.
func Format(comments []Comment) string {
	var sb strings.Builder

	for i, c := range comments {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(c.Persona)
		sb.WriteString(": ")
		sb.WriteString(strings.TrimSpace(c.Text))
	}

	return sb.String()
}
