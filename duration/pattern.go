package duration

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Pattern is a regular expression matching the duration grammar, for schema
// validators and other external tools. Alias letters are matched without
// regard to case, the same way Parse folds them. It does not reject a unit
// that appears twice; only Parse checks that.
var Pattern = buildPattern()

// Regexp is Pattern compiled.
var Regexp = regexp.MustCompile(Pattern)

func buildPattern() string {
	alts := make([]string, len(aliasesByLength))
	for i, a := range aliasesByLength {
		alts[i] = aliasPattern(a.text)
	}
	// Same whitespace as unicode.IsSpace.
	ws := `[\s\v\x{85}\p{Z}]*`
	pair := `[0-9]{1,` + strconv.Itoa(MaxDigits) + `}` + ws + `(?:` + strings.Join(alts, "|") + `)`
	return `^` + ws + pair + `(?:` + ws + pair + `)*` + ws + `$`
}

// aliasPattern spells each letter of alias as a class of the runes
// hasPrefixFold accepts for it. (?i) would fold whole Unicode case orbits
// and let U+017F stand in for "s".
func aliasPattern(alias string) string {
	var b strings.Builder
	for _, r := range alias {
		switch {
		case r < utf8.RuneSelf && unicode.IsLetter(r):
			b.WriteString("[" + string(unicode.ToLower(r)) + string(unicode.ToUpper(r)) + "]")
		case r >= utf8.RuneSelf:
			b.WriteString("[" + string(foldVariants(r)) + "]")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return b.String()
}

// foldVariants returns the runes that foldRune maps to r.
func foldVariants(r rune) []rune {
	variants := []rune{r}
	for v := unicode.SimpleFold(r); v != r; v = unicode.SimpleFold(v) {
		if foldRune(v) == r {
			variants = append(variants, v)
		}
	}
	return variants
}
