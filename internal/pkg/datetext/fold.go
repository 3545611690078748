// Package datetext turns scraped, multilingual date expressions ("14 avr. – 18",
// "Jul 12 - 15", "21 mai") into calendar date ranges.
package datetext

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s and strips diacritics, so "Février" and "fevrier" fold to
// the same string. Transformers keep state, so each call builds its own.
func Fold(s string) string {
	lower := cases.Lower(language.Und).String(s)
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripMarks, lower)
	if err != nil {
		return lower
	}
	return folded
}
