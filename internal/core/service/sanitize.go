package service

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

var textPolicy = bluemonday.StrictPolicy()

// cleanText strips all markup from user supplied text. The strict policy
// entity-escapes what it keeps; the result is stored as plain text, so the
// escaping is undone.
func cleanText(s string) string {
	return html.UnescapeString(textPolicy.Sanitize(s))
}
