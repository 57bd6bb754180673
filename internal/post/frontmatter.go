package post

import (
	"strings"

	"github.com/alkime/quill/internal/apperr"
	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// Post is a Markdown file split at its frontmatter boundary.
type Post struct {
	// Name is the file name within the store.
	Name string
	// Frontmatter is the raw block from the opening delimiter through the
	// closing delimiter line, without the closing line's newline.
	Frontmatter string
	// Body is everything after the closing delimiter line.
	Body string
	// Meta is the decoded frontmatter; nil when it is not valid YAML.
	Meta map[string]any

	// broken records whether a line break followed the closing delimiter.
	broken bool
}

// Title returns the frontmatter title, if any.
func (p *Post) Title() string {
	if s, ok := p.Meta["title"].(string); ok {
		return s
	}

	return ""
}

// Parse splits content at the first two lines consisting solely of "---".
func Parse(content string) (*Post, error) {
	var (
		found [2]int // line start offsets of the delimiters
		ends  [2]int // offsets just past each delimiter's text
		n     int
	)

	for start := 0; start <= len(content) && n < 2; {
		end := strings.IndexByte(content[start:], '\n')
		lineEnd := len(content)
		if end >= 0 {
			lineEnd = start + end
		}

		if strings.TrimSuffix(content[start:lineEnd], "\r") == delimiter {
			found[n] = start
			ends[n] = lineEnd
			n++
		}

		if end < 0 {
			break
		}
		start = lineEnd + 1
	}

	if n < 2 {
		return nil, apperr.ErrMalformedPost
	}

	p := &Post{
		Frontmatter: content[:ends[1]],
	}
	if ends[1] < len(content) {
		p.Body = content[ends[1]+1:]
		p.broken = true
	}

	block := content[ends[0]:found[1]]
	var meta map[string]any
	if err := yaml.Unmarshal([]byte(block), &meta); err == nil {
		p.Meta = meta
	}

	return p, nil
}

// String reassembles the post exactly as it was parsed.
func (p *Post) String() string {
	if !p.broken {
		return p.Frontmatter
	}

	return p.Frontmatter + "\n" + p.Body
}
