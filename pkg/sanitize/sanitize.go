package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ugc allows the formatting subset a rich-text editor produces; scripts,
// event handlers and iframes are stripped.
var ugc = bluemonday.UGCPolicy()

// strict removes every tag.
var strict = bluemonday.StrictPolicy()

// HTML sanitizes user-authored rich text for storage.
func HTML(s string) string {
	return strings.TrimSpace(ugc.Sanitize(s))
}

// Text strips all markup, leaving plain text.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// Summary trims s to at most max bytes, cutting back to a word boundary.
func Summary(s string, max int) string {
	if len(s) <= max {
		return s
	}
	i := max
	for i > 0 && i < len(s) && s[i] != ' ' {
		i--
	}
	if i <= 0 {
		i = max
	}
	return s[:i] + "…"
}
