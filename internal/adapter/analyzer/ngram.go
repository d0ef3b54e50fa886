package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// DefaultNGramSize is the window length used for phrase overlap.
const DefaultNGramSize = 3

// BuildNGrams returns every contiguous window of n tokens joined by a single
// space, in order and with duplicates. Fewer than n tokens yields no n-grams.
func BuildNGrams(tokens []string, n int) []string {
	if n <= 0 || len(tokens) < n {
		return []string{}
	}
	ngrams := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		ngrams = append(ngrams, strings.Join(tokens[i:i+n], " "))
	}
	return ngrams
}

// NGramSet collapses an n-gram sequence into a set.
func NGramSet(ngrams []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ngrams))
	for _, g := range ngrams {
		set[g] = struct{}{}
	}
	return set
}

// Jaccard computes |A∩B| / |A∪B| treating both inputs as sets.
// It is 0 when both are empty.
func Jaccard(a, b []string) float64 {
	return JaccardSets(NGramSet(a), NGramSet(b))
}

// JaccardSets is Jaccard over prebuilt sets.
func JaccardSets(setA, setB map[string]struct{}) float64 {
	small, large := setA, setB
	if len(small) > len(large) {
		small, large = large, small
	}

	intersection := 0
	for g := range small {
		if _, exists := large[g]; exists {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0.0
	}

	return float64(intersection) / float64(union)
}

// Fingerprint returns the hex SHA-256 digest of the lowercased text.
// It only detects exact duplicates.
func Fingerprint(text string) string {
	hash := sha256.Sum256([]byte(strings.ToLower(text)))
	return hex.EncodeToString(hash[:])
}
