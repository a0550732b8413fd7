// internal/pkg/textnorm/textnorm.go
package textnorm

import (
	"strings"
	"unicode"
)

// Normalize lower-cases text, drops apostrophes, replaces anything outside
// [a-z0-9 ] with a space and collapses whitespace.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))

	for _, r := range strings.ToLower(text) {
		switch {
		case isApostrophe(r):
			continue
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize splits normalized text into words. Tokens shorter than two
// characters are dropped unless they are numbers (e.g. "5" in "size 5").
func Tokenize(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return []string{}
	}

	parts := strings.Split(normalized, " ")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) >= 2 || isNumeric(p) {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// ContainsWord reports whether word appears in normalized text as a
// standalone word.
func ContainsWord(text, word string) bool {
	if word == "" || text == "" {
		return false
	}
	return text == word ||
		strings.Contains(text, " "+word+" ") ||
		strings.HasPrefix(text, word+" ") ||
		strings.HasSuffix(text, " "+word)
}

func isApostrophe(r rune) bool {
	switch r {
	case '\'', '’', '‘', 'ʼ', '`':
		return true
	}
	return false
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
