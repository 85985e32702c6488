// Package textutil holds the string helpers shared by content services:
// URL slug generation and HTML sanitising.
package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalid     = regexp.MustCompile(`[^a-z0-9-]+`)
	multipleHyphens = regexp.MustCompile(`-{2,}`)
	slugPattern     = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Slugify converts a title to a URL slug: accents are stripped, the result is
// lowercased and every run of other characters collapses to one hyphen.
// Titles with no Latin letters or digits produce "".
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(result)
	result = strings.Join(strings.Fields(result), "-")
	result = strings.ReplaceAll(result, "_", "-")
	result = slugInvalid.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// IsValidSlug reports whether s is lowercase alphanumerics separated by single hyphens.
func IsValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}
