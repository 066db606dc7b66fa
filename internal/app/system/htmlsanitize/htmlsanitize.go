// Package htmlsanitize cleans strings that arrive from the survey backend
// before they reach a template or a CSV cell.
package htmlsanitize

import (
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict = bluemonday.StrictPolicy()

	// Backend messages sometimes carry light emphasis.
	message = func() *bluemonday.Policy {
		p := bluemonday.NewPolicy()
		p.AllowElements("b", "strong", "i", "em", "br")
		return p
	}()
)

// StripTags removes all markup and returns plain text. Entities are
// decoded so that html/template escapes the result exactly once.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// Message sanitizes a backend message for display in a flash banner,
// keeping only inline emphasis.
func Message(s string) template.HTML {
	if s == "" {
		return ""
	}
	return template.HTML(message.Sanitize(s))
}

// IsPlainText reports whether s contains no tag-like markup.
func IsPlainText(s string) bool {
	return !strings.ContainsAny(s, "<>")
}
