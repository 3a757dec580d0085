package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldAccents removes diacritics ("Ação" becomes "Acao").
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeEstablishment is the lookup form used by the classifier: accents folded,
// upper-cased, every run of non-alphanumerics collapsed to one space.
func NormalizeEstablishment(s string) string {
	s = strings.ToUpper(FoldAccents(s))

	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteRune(r)
			space = false
			continue
		}
		space = true
	}

	return b.String()
}

// Tokens splits a normalized string into words.
func Tokens(normalized string) []string {
	return strings.Fields(normalized)
}

// ContainsPhrase reports whether phrase occurs in text on word boundaries.
// Both arguments must already be normalized.
func ContainsPhrase(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	return strings.Contains(" "+text+" ", " "+phrase+" ")
}
