package playlist

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	nonSlugRe    = regexp.MustCompile(`[^\w-]+`)
	nonWordRe    = regexp.MustCompile(`[^\w]+`)
	hyphenRunRe  = regexp.MustCompile(`--+`)
)

// foldDiacritics strips combining marks so "Documentários" slugs to
// "documentarios" instead of dropping the accented letter entirely.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// CategorySlug derives a category ID from a display name: lowercase,
// whitespace becomes a hyphen, remaining non-word characters are dropped,
// hyphen runs collapse and edge hyphens are trimmed.
func CategorySlug(name string) string {
	s := strings.ToLower(foldDiacritics(name))
	s = whitespaceRe.ReplaceAllString(s, "-")
	s = nonSlugRe.ReplaceAllString(s, "")
	s = hyphenRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ChannelSlug derives a channel ID from a display name with the stricter
// rule: lowercase with every non-word character, spaces included, removed.
// No hyphens are inserted.
func ChannelSlug(name string) string {
	return nonWordRe.ReplaceAllString(strings.ToLower(foldDiacritics(name)), "")
}
