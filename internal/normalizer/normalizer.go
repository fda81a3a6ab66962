// Package normalizer turns raw text into the ordered token sequence used by
// the index. The pipeline is fixed: split on the ASCII space character,
// lowercase, strip ASCII punctuation, drop stopwords, stem.
package normalizer

import (
	"strings"

	snowballeng "github.com/kljensen/snowball/english"
)

// stopwords is the closed set of terms excluded from indexing. Tokens are
// matched after lowercasing and punctuation stripping.
var stopwords = map[string]struct{}{
	"the": {}, "be": {}, "to": {}, "of": {}, "and": {}, "a": {},
	"in": {}, "that": {}, "have": {}, "i": {}, "it": {}, "for": {},
	"not": {}, "on": {}, "with": {}, "he": {}, "as": {}, "you": {},
	"do": {}, "at": {}, "this": {}, "but": {}, "his": {}, "by": {},
	"from": {}, "wikipedia": {},
}

// Normalize maps text to its ordered sequence of index tokens. Duplicates
// are preserved in input order; the caller aggregates frequencies. Tokens
// that are empty after punctuation stripping are dropped, so empty input
// yields an empty sequence. Stateless and safe for concurrent use.
func Normalize(text string) []string {
	// Split on the space character only, not general whitespace.
	parts := strings.Split(text, " ")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		token := stripPunctuation(strings.ToLower(part))
		if token == "" {
			continue
		}
		if _, stop := stopwords[token]; stop {
			continue
		}
		tokens = append(tokens, snowballeng.Stem(token, false))
	}
	return tokens
}

// stripPunctuation removes every ASCII punctuation character from token.
// Non-ASCII characters pass through untouched.
func stripPunctuation(token string) string {
	if !strings.ContainsFunc(token, isASCIIPunct) {
		return token
	}
	var b strings.Builder
	b.Grow(len(token))
	for _, r := range token {
		if !isASCIIPunct(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isASCIIPunct(r rune) bool {
	switch {
	case r >= '!' && r <= '/',
		r >= ':' && r <= '@',
		r >= '[' && r <= '`',
		r >= '{' && r <= '~':
		return true
	}
	return false
}
