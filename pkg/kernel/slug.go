package kernel

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonSlugChars  = regexp.MustCompile(`[^\p{L}\p{M}\p{N}-]`)
)

// latinFold strips accents from Latin letters only; other scripts keep their marks.
// Transformers carry state, so each call gets its own chain.
func latinFold() transform.Transformer {
	return transform.Chain(
		norm.NFC,
		runes.If(runes.In(unicode.Latin), transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn))), nil),
		norm.NFC,
	)
}

// Slugify derives the URL slug of a job title or company name: Latin accents
// folded, lowercased, whitespace runs turned into a single hyphen, anything
// that is not a letter, digit or hyphen dropped.
func Slugify(s string) string {
	folded, _, err := transform.String(latinFold(), s)
	if err != nil {
		folded = s
	}

	slug := strings.ToLower(strings.TrimSpace(folded))
	slug = whitespaceRun.ReplaceAllString(slug, "-")
	return nonSlugChars.ReplaceAllString(slug, "")
}
