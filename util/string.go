package util

import (
	"strings"
	"unicode"
)

// Ident returns s as an identifier made only of letters, digits and underscores,
// where the first rune is upper-cased if upperFirst is set and lower-cased otherwise.
//
// Runes that cannot appear in an identifier are replaced with '_', and an identifier
// that would start with a digit, or that would be empty, is prefixed with '_'
func Ident(s string, upperFirst bool) string {
	sb := strings.Builder{}
	sb.Grow(len(s) + 1)
	for i, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			r = '_'
		}
		if i == 0 {
			switch {
			case unicode.IsDigit(r):
				sb.WriteRune('_')
			case upperFirst:
				r = unicode.ToUpper(r)
			default:
				r = unicode.ToLower(r)
			}
		}
		sb.WriteRune(r)
	}
	if sb.Len() == 0 {
		return "_"
	}
	return sb.String()
}
