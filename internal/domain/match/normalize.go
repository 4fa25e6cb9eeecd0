// Package match implements answer normalization and comparison for the
// quiz. Matching is an allow-list of alternates, not approximate
// matching: a submitted answer is correct iff its normalized form equals
// the normalized form of the canonical name or of a registered alias.
package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD, removes combining marks (so "é" becomes
// "e") and recomposes. The transformer is stateless and safe for
// concurrent use.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize converts text into its canonical comparison form:
// lowercase, diacritics stripped, everything except letters, digits and
// spaces removed, and internal whitespace collapsed to single spaces.
//
//	Normalize("  República   Democrática ") == "republica democratica"
func Normalize(text string) string {
	text = strings.ToLower(text)

	if stripped, _, err := transform.String(stripMarks, text); err == nil {
		text = stripped
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Fold returns the normalized form with all spaces removed, so compound
// names can be typed without separators ("costarica" for "Costa Rica").
func Fold(text string) string {
	return strings.ReplaceAll(Normalize(text), " ", "")
}
