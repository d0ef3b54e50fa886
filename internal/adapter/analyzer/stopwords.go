package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// StopWords is an immutable set of words excluded from similarity
// tokenization. Build it once and share it; methods never mutate it.
type StopWords struct {
	words map[string]struct{}
}

// function words
var functionWords = []string{
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with", "by",
	"is", "are", "was", "were", "be", "been", "being", "have", "has", "had", "do", "does", "did",
	"will", "would", "could", "should", "may", "might", "must", "can", "this", "that", "these", "those",
	"as", "if", "so", "than", "too", "very", "just", "only", "also", "either", "neither", "both",
	"each", "every", "all", "any", "some", "many", "much", "few", "little", "more", "most", "least",
}

// Terms that recur across robotics and AI writing and say nothing about
// whether a passage was copied.
var domainBoilerplate = []string{
	"algorithm", "algorithmic", "approach", "method", "methods", "system", "systems", "model", "models",
	"data", "learning", "learn", "neural", "network", "networks", "function", "functions", "based",
	"using", "used", "result", "results", "performance", "improve", "improved", "improvement",
	"show", "shown", "demonstrate", "demonstrated", "present", "presented", "propose", "proposed",
	"introduce", "introduced", "develop", "developed", "research", "researchers", "study", "studies",
}

// DefaultStopWords returns the curated stop-word set.
func DefaultStopWords() StopWords {
	m := make(map[string]struct{}, len(functionWords)+len(domainBoilerplate))
	for _, w := range functionWords {
		m[w] = struct{}{}
	}
	for _, w := range domainBoilerplate {
		m[w] = struct{}{}
	}
	return StopWords{words: m}
}

// With returns a new set holding s plus extra. Extra words are lowercased.
func (s StopWords) With(extra ...string) StopWords {
	m := make(map[string]struct{}, len(s.words)+len(extra))
	for w := range s.words {
		m[w] = struct{}{}
	}
	for _, w := range extra {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			m[w] = struct{}{}
		}
	}
	return StopWords{words: m}
}

// Contains reports whether word is a stop word.
func (s StopWords) Contains(word string) bool {
	_, ok := s.words[word]
	return ok
}

// Len returns the number of words in the set.
func (s StopWords) Len() int {
	return len(s.words)
}

// Digest returns a stable hash of the set's contents.
func (s StopWords) Digest() string {
	words := make([]string, 0, len(s.words))
	for w := range s.words {
		words = append(words, w)
	}
	sort.Strings(words)
	hash := sha256.Sum256([]byte(strings.Join(words, "\n")))
	return hex.EncodeToString(hash[:8])
}
