package strings

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripDiacritics removes combining marks: "Ávila" becomes "Avila", "Peñafiel"
// becomes "Penafiel". Input that fails to transform is returned unchanged.
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Fold lowercases, trims and strips diacritics for accent-insensitive matching.
func Fold(s string) string {
	return strings.ToLower(StripDiacritics(strings.TrimSpace(s)))
}
