package batch

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalize prepares text for name comparison: accented characters are
// decomposed and their combining marks dropped, the result is lower-cased,
// whitespace runs collapse to a single space, and the ends are trimmed.
// Total and idempotent; empty input yields the empty string.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	// Transformers carry state, so build the chain per call rather than
	// sharing one across goroutines.
	strip := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(strip, s)
	if err != nil {
		out = s
	}

	out = strings.ToLower(out)
	out = whitespaceRun.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// TitleCase display-cases a captured field: first letter of each word
// upper, the rest lower.
func TitleCase(s string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(s))
}
