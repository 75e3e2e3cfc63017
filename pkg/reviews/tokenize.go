package reviews

import (
	"strings"
	"unicode"
)

// Tokenize lowercases, strips punctuation and maps each word to its token
// index, with the start marker prepended. Tokens are not capped against any
// vocabulary size here; callers apply Cap before vectorizing.
func Tokenize(text string, idx *WordIndex) []int {
	clean := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '\'':
			return unicode.ToLower(r)
		default:
			return ' '
		}
	}, text)

	words := strings.Fields(clean)
	tokens := make([]int, 0, len(words)+1)
	tokens = append(tokens, TokenStart)
	for _, word := range words {
		tokens = append(tokens, idx.Token(word))
	}
	return tokens
}
