// Package textnorm canonicalizes free text for keyword comparison. It is the
// only place where case and diacritic insensitivity is defined: every keyword
// and every question must pass through Normalize before being compared.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lower-cases the input, decomposes accented characters and strips
// the combining marks, removes everything that is not a word character or
// whitespace, and trims the result. Idempotent.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	lower := strings.ToLower(s)
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	decomposed, _, err := transform.String(stripMarks, lower)
	if err != nil {
		decomposed = lower
	}
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// Tokens normalizes the input and splits it into non-empty
// whitespace-delimited tokens.
func Tokens(s string) []string {
	return strings.Fields(Normalize(s))
}
