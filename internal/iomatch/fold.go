package iomatch

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// Fold makes a string accent-insensitive and case-insensitive, and keeps
// only letters and digits separated by single spaces.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	res, _, err := transform.String(t, s)
	if err != nil {
		res = s
	}
	res = folder.String(res)
	res = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, res)
	return strings.Join(strings.Fields(res), " ")
}

func matchKey(name, country string) string {
	n := Fold(name)
	if n == "" {
		return ""
	}
	return n + "|" + Fold(country)
}
