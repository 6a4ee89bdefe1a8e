package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy = bluemonday.StrictPolicy()
	ugcPolicy    = bluemonday.UGCPolicy()
)

// SanitizeText strips every tag, decodes entities and collapses whitespace,
// producing a single-line plain-text value suitable for names and scalar metadata.
func SanitizeText(s string) string {
	stripped := html.UnescapeString(strictPolicy.Sanitize(s))
	return strings.Join(strings.Fields(stripped), " ")
}

// SanitizeHTML keeps the markup allowed in user-generated post content and
// removes scripts, event handlers and other unsafe constructs.
func SanitizeHTML(s string) string {
	return ugcPolicy.Sanitize(s)
}
