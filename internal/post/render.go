package post

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/alkime/quill/internal/comments"
)

// CommentsHeading opens the rendered comments section.
const CommentsHeading = "## Comments"

var commentsHeadingRe = regexp.MustCompile(`(?m)^## Comments[ \t]*\r?$`)

// RenderComments returns the post with a Comments section appended: the
// original frontmatter block, the body with trailing whitespace removed,
// then one "### persona" subsection per comment in the order given.
func RenderComments(p *Post, cs []comments.Comment) string {
	var sb strings.Builder

	sb.WriteString(p.Frontmatter)
	sb.WriteString("\n")
	sb.WriteString(strings.TrimRightFunc(p.Body, unicode.IsSpace))
	sb.WriteString("\n\n")
	sb.WriteString(CommentsHeading)
	sb.WriteString("\n")

	for _, c := range cs {
		sb.WriteString("\n### ")
		sb.WriteString(c.Persona)
		sb.WriteString("\n")
		sb.WriteString(strings.TrimSpace(c.Text))
		sb.WriteString("\n")
	}

	return sb.String()
}

// HasComments reports whether the body already carries a Comments section.
func (p *Post) HasComments() bool {
	return commentsHeadingRe.MatchString(p.Body)
}
