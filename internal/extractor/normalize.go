package extractor

import (
	"regexp"
	"strings"
)

var punctuationReplacer = strings.NewReplacer(
	"，", ", ",
	"：", ": ",
	"／", "/",
	"（", " (",
	"）", ") ",
)

// NormalizePunctuation replaces Chinese punctuation with English equivalents
// and collapses the whitespace this introduces.
func NormalizePunctuation(s string) string {
	if s == "" {
		return s
	}
	return strings.Join(strings.Fields(punctuationReplacer.Replace(s)), " ")
}

var phonePrefixes = []string{"+44", "+61", "0044", "0061"}

// NormalizePhone strips separators, international codes and leading zeros.
func NormalizePhone(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '\t':
			return -1
		}
		return r
	}, s)
	for _, p := range phonePrefixes {
		if strings.HasPrefix(s, p) {
			s = s[len(p):]
			break
		}
	}
	return strings.TrimLeft(s, "0")
}

// blacklistPattern matches whole words so "Solihull" is not read as "Hull".
var blacklistPattern = func() *regexp.Regexp {
	quoted := make([]string, len(BlacklistKeywords))
	for i, k := range BlacklistKeywords {
		quoted[i] = regexp.QuoteMeta(k)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
}()

// ContainsBlacklisted reports whether an address mentions a flagged location.
func ContainsBlacklisted(address string) bool {
	return blacklistPattern.MatchString(address)
}
