package comments_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/alkime/quill/internal/apperr"
	"github.com/alkime/quill/internal/comments"
	"github.com/alkime/quill/internal/llm"
	"github.com/alkime/quill/internal/persona"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingCompleter answers every prompt and remembers what it was asked.
type recordingCompleter struct {
	prompts []string
	failOn  int
	err     error
}

func (r *recordingCompleter) Complete(_ context.Context, prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if r.err != nil && len(r.prompts) == r.failOn {
		return "", r.err
	}

	return "comment #" + string(rune('0'+len(r.prompts))), nil
}

// fixedSource always returns the same offset (clamped to the range).
type fixedSource struct{ offset int }

func (f fixedSource) IntN(n int) int {
	if f.offset >= n {
		return n - 1
	}

	return f.offset
}

func testRegistry(t *testing.T) *persona.Registry {
	t.Helper()

	r, err := persona.NewRegistry(
		persona.Persona{Name: "A", Description: "first"},
		persona.Persona{Name: "B", Description: "second"},
		persona.Persona{Name: "C", Description: "third"},
		persona.Persona{Name: "D", Description: "fourth"},
	)
	require.NoError(t, err)

	return r
}

func TestGenerate_DistinctPersonasFromRegistry(t *testing.T) {
	reg := testRegistry(t)

	for seed := uint64(0); seed < 50; seed++ {
		completer := &recordingCompleter{}
		gen := comments.NewGenerator(reg, completer,
			comments.WithSource(rand.New(rand.NewPCG(seed, seed+1))))

		for count := 0; count <= reg.Len(); count++ {
			completer.prompts = nil

			got, err := gen.Generate(context.Background(), "A post body.", count)
			require.NoError(t, err)
			require.Len(t, got, count)
			assert.Len(t, completer.prompts, count)

			seen := map[string]bool{}
			for _, c := range got {
				_, ok := reg.Lookup(c.Persona)
				assert.True(t, ok, "persona %q not in registry", c.Persona)
				assert.False(t, seen[c.Persona], "persona %q sampled twice", c.Persona)
				seen[c.Persona] = true
			}
		}
	}
}

func TestGenerate_DeterministicSelection(t *testing.T) {
	reg := testRegistry(t)
	completer := &recordingCompleter{}

	// Offset 0 keeps registry order; the last offset rotates from the end.
	gen := comments.NewGenerator(reg, completer, comments.WithSource(fixedSource{offset: 0}))
	got, err := gen.Generate(context.Background(), "Body", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, personaNames(got))

	gen = comments.NewGenerator(reg, completer, comments.WithSource(fixedSource{offset: 100}))
	got, err = gen.Generate(context.Background(), "Body", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"D", "A"}, personaNames(got))
}

func TestGenerate_PromptEmbedsPersonaAndContent(t *testing.T) {
	reg := testRegistry(t)
	completer := &recordingCompleter{}
	gen := comments.NewGenerator(reg, completer, comments.WithSource(fixedSource{}))

	got, err := gen.Generate(context.Background(), "The full post.", 1)
	require.NoError(t, err)

	require.Len(t, completer.prompts, 1)
	assert.Equal(t, "As a A (first), comment on this post:\n\nThe full post.", completer.prompts[0])
	assert.Equal(t, comments.Comment{Persona: "A", Text: "comment #1"}, got[0])
}

func TestGenerate_EmptyContent(t *testing.T) {
	for _, content := range []string{"", "   ", "\n\t\n"} {
		completer := &recordingCompleter{}
		gen := comments.NewGenerator(testRegistry(t), completer)

		got, err := gen.Generate(context.Background(), content, 3)

		require.ErrorIs(t, err, apperr.ErrEmptyContent)
		assert.Nil(t, got)
		assert.Empty(t, completer.prompts, "no network calls expected")
	}
}

func TestGenerate_InsufficientPersonas(t *testing.T) {
	completer := &recordingCompleter{}
	gen := comments.NewGenerator(testRegistry(t), completer)

	got, err := gen.Generate(context.Background(), "Body", 5)

	require.ErrorIs(t, err, apperr.ErrInsufficientPersonas)
	assert.Nil(t, got)
	assert.Empty(t, completer.prompts, "no network calls expected")
}

func TestGenerate_AbortsOnFailure(t *testing.T) {
	completer := &recordingCompleter{failOn: 2, err: apperr.ErrServiceUnavailable}
	gen := comments.NewGenerator(testRegistry(t), completer, comments.WithSource(fixedSource{}))

	got, err := gen.Generate(context.Background(), "Body", 3)

	require.ErrorIs(t, err, apperr.ErrServiceUnavailable)
	assert.Nil(t, got, "no partial results")
	assert.Len(t, completer.prompts, 2, "generation stops at the first failure")
	assert.Contains(t, err.Error(), "B")
}

func TestGenerate_PropagatesContextErrors(t *testing.T) {
	completer := llm.CompleterFunc(func(ctx context.Context, _ string) (string, error) {
		return "", ctx.Err()
	})
	gen := comments.NewGenerator(testRegistry(t), completer)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.Generate(ctx, "Body", 1)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFormat(t *testing.T) {
	out := comments.Format([]comments.Comment{
		{Persona: "Skeptic", Text: "Meh.\n"},
		{Persona: "Optimist", Text: "  Love it!"},
	})

	assert.Equal(t, "Skeptic: Meh.\n\nOptimist: Love it!", out)
	assert.Empty(t, comments.Format(nil))
}

func personaNames(cs []comments.Comment) []string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Persona
	}

	return names
}
