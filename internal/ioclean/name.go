package ioclean

import (
	"regexp"
	"strings"

	"github.com/gnames/gnlib"
)

var (
	bracketsRe = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]|\{[^}]*\}`)
	noiseRe    = regexp.MustCompile(
		`(?i)\b(power\s*(plant|station)|kraftwerk|kraftwerke|centrale|` +
			`central|centrala|elektrownia|planta|plant|station|kw|hkw|gkw)\b`,
	)
	unitRe = regexp.MustCompile(
		`(?i)\b(unit|units|block|bloc|blok|grupo|tranche|gt|st)\s*[0-9]+[a-z]?\b`,
	)
	numberRe = regexp.MustCompile(`\b[0-9]+[a-z]?\b`)
	romanRe  = regexp.MustCompile(`\b(I|II|III|IV|V|VI|VII|VIII|IX|X|XI|XII)\b`)
	spaceRe  = regexp.MustCompile(`\s+`)
)

// CleanName removes tokens that differ between registries for the same
// plant: bracketed text, generic words like "power plant" or "Kraftwerk",
// unit and block numbers, and roman numerals.
func CleanName(name string) string {
	res := gnlib.FixUtf8(name)
	res = bracketsRe.ReplaceAllString(res, " ")
	res = unitRe.ReplaceAllString(res, " ")
	res = noiseRe.ReplaceAllString(res, " ")
	res = romanRe.ReplaceAllString(res, " ")
	res = numberRe.ReplaceAllString(res, " ")
	res = strings.NewReplacer("-", " ", "_", " ", "/", " ").Replace(res)
	res = spaceRe.ReplaceAllString(res, " ")
	return strings.Trim(res, " ,.;:")
}
