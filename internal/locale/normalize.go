package locale

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases a string and strips diacritics, so that
// "Página" and "pagina" compare equal. Falls back to plain lowercasing
// if the transform fails.
func Normalize(s string) string {
	lower := strings.ToLower(s)
	out, _, err := transform.String(stripMarks, lower)
	if err != nil {
		return lower
	}
	return out
}
