package post

import (
	"regexp"
	"strings"
)

var (
	unsafeSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)
	repeatedHyphens = regexp.MustCompile(`-+`)
)

// Slug converts a title to a URL-friendly slug.
// Example: "My Great Post" -> "my-great-post"
func Slug(title string) string {
	slug := strings.ToLower(title)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = unsafeSlugChars.ReplaceAllString(slug, "")
	slug = repeatedHyphens.ReplaceAllString(slug, "-")

	return strings.Trim(slug, "-")
}
