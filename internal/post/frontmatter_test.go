package post

import (
	"testing"

	"github.com/alkime/quill/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		frontmatter string
		body        string
		title       string
	}{
		{
			name:        "simple",
			content:     "---\ntitle: Hi\n---\nBody text",
			frontmatter: "---\ntitle: Hi\n---",
			body:        "Body text",
			title:       "Hi",
		},
		{
			name:        "blank line after frontmatter",
			content:     "---\nlayout: post\ntitle: Hello\n---\n\n# Hello\n\nWorld.\n",
			frontmatter: "---\nlayout: post\ntitle: Hello\n---",
			body:        "\n# Hello\n\nWorld.\n",
			title:       "Hello",
		},
		{
			name:        "horizontal rule in body is not a delimiter",
			content:     "---\ntitle: A\n---\nabove\n---\nbelow\n",
			frontmatter: "---\ntitle: A\n---",
			body:        "above\n---\nbelow\n",
			title:       "A",
		},
		{
			name:        "crlf line endings",
			content:     "---\r\ntitle: Win\r\n---\r\nBody\r\n",
			frontmatter: "---\r\ntitle: Win\r\n---\r",
			body:        "Body\r\n",
			title:       "Win",
		},
		{
			name:        "no body",
			content:     "---\ntitle: Empty\n---",
			frontmatter: "---\ntitle: Empty\n---",
			body:        "",
			title:       "Empty",
		},
		{
			name:        "dashes inside a line do not count",
			content:     "--- \n---\nx: y\n---\nbody",
			frontmatter: "--- \n---\nx: y\n---",
			body:        "body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.content)
			require.NoError(t, err)

			assert.Equal(t, tt.frontmatter, p.Frontmatter)
			assert.Equal(t, tt.body, p.Body)
			assert.Equal(t, tt.title, p.Title())
			assert.Equal(t, tt.content, p.String(), "split/join must be lossless")
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, content := range []string{
		"",
		"no frontmatter at all",
		"---\ntitle: only one delimiter\nbody",
		"----\ntitle: x\n----\n",
	} {
		_, err := Parse(content)
		assert.ErrorIs(t, err, apperr.ErrMalformedPost, "content %q", content)
	}
}

func TestParse_InvalidYAMLKeepsRawBlock(t *testing.T) {
	p, err := Parse("---\n: invalid: yaml: {{{\n---\nBody\n")
	require.NoError(t, err)

	assert.Nil(t, p.Meta)
	assert.Equal(t, "---\n: invalid: yaml: {{{\n---", p.Frontmatter)
	assert.Empty(t, p.Title())
}

func TestString_TrailingNewlineWithEmptyBody(t *testing.T) {
	p, err := Parse("---\ntitle: x\n---\n")
	require.NoError(t, err)

	assert.Empty(t, p.Body)
	assert.Equal(t, "---\ntitle: x\n---\n", p.String())
}
