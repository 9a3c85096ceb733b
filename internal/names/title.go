package names

import (
	"strings"
	"unicode"
)

// Title upper-cases every cased letter that follows an uncased character and
// lower-cases the rest, so "o'brien-núñez" becomes "O'Brien-Núñez". Word
// boundaries are any uncased rune, including apostrophes and digits.
func Title(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevCased := false
	for _, r := range s {
		cased := isCased(r)
		switch {
		case cased && !prevCased:
			b.WriteRune(unicode.ToTitle(r))
		case cased:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prevCased = cased
	}
	return b.String()
}

func isCased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
}
