package uploader

import (
	"regexp"
	"strings"
)

var (
	nonSlugChars = regexp.MustCompile(`[^\w-]`)
	spaces       = regexp.MustCompile(`\s+`)
)

// SanitizeSlug cleans a slug value before submission: strip everything but
// word characters and hyphens, lowercase, then replace runs of whitespace
// with a hyphen. The order is deliberate and matches the historical
// behavior: spaces are non-word characters and are removed by the first
// step, so "My Slug!!" becomes "myslug", not "my-slug".
func SanitizeSlug(s string) string {
	s = nonSlugChars.ReplaceAllString(s, "")
	s = strings.ToLower(s)
	s = spaces.ReplaceAllString(s, "-")
	return s
}
