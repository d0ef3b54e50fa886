package analyzer

import (
	"strings"
	"unicode"
)

// minTokenLen is the shortest token kept; anything of length 2 or less is noise.
const minTokenLen = 3

// Tokenizer normalizes prose into lowercase word tokens for n-gram comparison.
type Tokenizer struct {
	stopwords StopWords
}

// NewTokenizer creates a new Tokenizer that filters the given stop words.
func NewTokenizer(stopwords StopWords) *Tokenizer {
	return &Tokenizer{stopwords: stopwords}
}

// Tokenize lowercases text, drops markdown markers, digits and punctuation,
// and returns the remaining words in input order minus stop words and short
// words. Duplicates are kept.
func (t *Tokenizer) Tokenize(text string) []string {
	words := splitWords(text)
	tokens := make([]string, 0, len(words))

	for _, word := range words {
		if len([]rune(word)) < minTokenLen {
			continue
		}
		if t.stopwords.Contains(word) {
			continue
		}
		tokens = append(tokens, word)
	}

	return tokens
}

// splitWords splits lowercased text on every non-letter rune. Digits are
// deleted in place, so "abc123def" yields "abcdef".
func splitWords(text string) []string {
	var words []string
	var current strings.Builder

	for _, r := range text {
		switch {
		case unicode.IsLetter(r):
			current.WriteRune(unicode.ToLower(r))
		case unicode.IsDigit(r):
		default:
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}

	return words
}
