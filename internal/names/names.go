// Package names holds the name normalization rules shared by the XML and PDF
// sides of the converter: the Latin-script gate, title casing, the final
// accent-stripping cleaner and the three lookup key variants.
package names

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reLatinName   = regexp.MustCompile(`^[\p{Latin}0-9 .,'\-()]+$`)
	reNotNameChar = regexp.MustCompile(`[^A-Za-z0-9 .,'\-()]`)
	reNotAlnum    = regexp.MustCompile(`[^\p{L}\p{N}\s]`)
)

// punctuation variants folded before the Latin check
var latinPunct = strings.NewReplacer(
	"\u2018", "'", "\u2019", "'", "\u201B", "'",
	"\u201C", `"`, "\u201D", `"`, "\u201F", `"`,
	"\u00A0", " ", "\u202F", " ",
	"\u2013", "-", "\u2014", "-", "\u2010", "-",
	"\u2011", "-", "\u2012", "-",
)

// Cyrillic look-alikes for I and E
var confusables = strings.NewReplacer(
	"\u0406", "I", "\u0456", "i",
	"\u0401", "E", "\u0451", "e",
)

// smart punctuation mapped to ASCII by the final cleaner
var finalPunct = strings.NewReplacer(
	"\u2018", "'", "\u2019", "'", "\u201B", "'",
	"\u201C", `"`, "\u201D", `"`,
	"\u2013", "-", "\u2014", "-",
	"\u00A0", " ",
)

func normalizeForLatinCheck(s string) string {
	s = strings.TrimFunc(s, unicode.IsSpace)
	if s == "" {
		return ""
	}
	s = latinPunct.Replace(s)
	s = confusables.Replace(s)
	s = strings.ReplaceAll(s, `"`, " ")
	return collapseSpace(s)
}

// IsLatin reports whether s, after folding punctuation variants and the
// Cyrillic I/E confusables, consists only of Latin letters, digits, spaces
// and . , ' - ( ).
func IsLatin(s string) bool {
	return reLatinName.MatchString(normalizeForLatinCheck(s))
}

// Clean collapses whitespace and title-cases the result.
func Clean(s string) string {
	return Title(strings.TrimFunc(collapseSpace(s), unicode.IsSpace))
}

// StripAccents is the final FULL_NAME cleaner: decompose, drop combining
// marks, map smart punctuation to ASCII, keep only [A-Za-z0-9 .,'()-],
// collapse whitespace and title-case.
func StripAccents(s string) string {
	if s == "" {
		return ""
	}
	s = dropMarks(s)
	s = finalPunct.Replace(s)
	s = reNotNameChar.ReplaceAllString(s, "")
	s = strings.TrimFunc(collapseSpace(s), unicode.IsSpace)
	return Title(s)
}

// Variants returns the three lookup keys for a name, in lookup order:
// accent-preserving, alphanumeric-only, accent-stripped. All are lower-cased
// with whitespace collapsed.
func Variants(s string) [3]string {
	return [3]string{keepAccents(s), alnumOnly(s), stripAccentsKey(s)}
}

func keepAccents(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToLower(strings.TrimFunc(collapseSpace(s), unicode.IsSpace))
}

func alnumOnly(s string) string {
	if s == "" {
		return ""
	}
	s = reNotAlnum.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimFunc(collapseSpace(s), unicode.IsSpace))
}

func stripAccentsKey(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToLower(strings.TrimFunc(collapseSpace(dropMarks(s)), unicode.IsSpace))
}

// dropMarks applies NFKD and removes nonspacing marks.
func dropMarks(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// collapseSpace replaces every run of Unicode whitespace with one space.
// It does not trim.
func collapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte(' ')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
