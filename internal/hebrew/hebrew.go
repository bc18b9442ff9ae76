// Package hebrew canonicalizes Hebrew text so that letter variants
// compare equal: final (sofit) forms fold to their base letters and
// vowel points / cantillation marks are stripped.
package hebrew

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// sofit forms map to their mid-word base letters
var finals = map[rune]rune{
	'ך': 'כ',
	'ם': 'מ',
	'ן': 'נ',
	'ף': 'פ',
	'ץ': 'צ',
}

// stripMarks decomposes precomposed letters (e.g. shin with a shin
// dot) and drops every combining mark, leaving bare base letters.
var stripMarks = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// IsFinal reports whether r is a word-final letterform.
func IsFinal(r rune) bool {
	_, ok := finals[r]
	return ok
}

// NormalizeLetter folds a final letterform to its base letter. Every
// other rune passes through unchanged.
func NormalizeLetter(r rune) rune {
	if base, ok := finals[r]; ok {
		return base
	}
	return r
}

// Normalize returns the canonical form of s: marks stripped, final
// forms folded. It is total and idempotent.
func Normalize(s string) string {
	stripped, _, err := transform.String(stripMarks, s)
	if err != nil {
		stripped = s
	}
	if !strings.ContainsFunc(stripped, IsFinal) {
		return stripped
	}
	return strings.Map(NormalizeLetter, stripped)
}

// Letters returns the canonical letters of s in order.
func Letters(s string) []rune {
	return []rune(Normalize(s))
}

// Count returns the number of letters in s after normalization.
// A base letter carrying combining marks counts once.
func Count(s string) int {
	return len(Letters(s))
}
