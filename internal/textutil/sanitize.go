package textutil

import "github.com/microcosm-cc/bluemonday"

// htmlPolicy allows the markup an editor produces (headings, lists, links,
// images, tables) and strips scripts, styles and event handlers.
var htmlPolicy = bluemonday.UGCPolicy()

// SanitizeHTML returns s with unsafe markup removed.
func SanitizeHTML(s string) string {
	return htmlPolicy.Sanitize(s)
}

// StripTags removes all markup, leaving text content.
func StripTags(s string) string {
	return bluemonday.StrictPolicy().Sanitize(s)
}
