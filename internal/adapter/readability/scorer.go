package readability

import (
	"math"
	"regexp"
	"strings"

	"bookcheck/internal/domain"
)

// Default target range for the Flesch-Kincaid grade level.
const (
	DefaultMinGrade = 6.0
	DefaultMaxGrade = 12.0
)

var (
	headerPattern     = regexp.MustCompile(`(?m)^#+\s+`)
	emphasisPattern   = regexp.MustCompile(`[*_]{1,2}([^*_]+)[*_]{1,2}`)
	fencedCodePattern = regexp.MustCompile("```[\\s\\S]*?```")
	inlineCodePattern = regexp.MustCompile("`[^`]+`")
	linkPattern       = regexp.MustCompile(`!\[([^\]]*)\]\([^)]+\)|\[([^\]]+)\]\([^)]+\)`)
	bulletPattern     = regexp.MustCompile(`(?m)^[*-]\s+`)
	numberedPattern   = regexp.MustCompile(`(?m)^\d+\.\s+`)

	sentencePattern = regexp.MustCompile(`[.!?]+\s+`)
	wordPattern     = regexp.MustCompile(`[a-zA-Zà-ÿ]+`)
)

// Scorer computes Flesch metrics and checks the grade against a target range.
type Scorer struct {
	minGrade float64
	maxGrade float64
}

// NewScorer creates a scorer accepting grade levels in [minGrade, maxGrade].
func NewScorer(minGrade, maxGrade float64) *Scorer {
	return &Scorer{minGrade: minGrade, maxGrade: maxGrade}
}

// CountSyllables estimates syllables in an English word by counting vowel
// groups after dropping a trailing silent "e". Words of three letters or
// fewer count as one; every word has at least one.
func CountSyllables(word string) int {
	w := []rune(strings.ToLower(word))
	if len(w) <= 3 {
		return 1
	}
	if w[len(w)-1] == 'e' {
		w = w[:len(w)-1]
	}

	count := 0
	prevIsVowel := false
	for _, r := range w {
		isVowel := strings.ContainsRune("aeiouy", r)
		if isVowel && !prevIsVowel {
			count++
		}
		prevIsVowel = isVowel
	}

	return max(1, count)
}

// StripMarkdown removes headers, emphasis markers, code, link targets and
// list markers, keeping the visible prose.
func StripMarkdown(text string) string {
	text = headerPattern.ReplaceAllString(text, "")
	text = emphasisPattern.ReplaceAllString(text, "$1")
	text = fencedCodePattern.ReplaceAllString(text, "")
	text = inlineCodePattern.ReplaceAllString(text, "")
	text = linkPattern.ReplaceAllString(text, "${1}${2}")
	text = bulletPattern.ReplaceAllString(text, "")
	text = numberedPattern.ReplaceAllString(text, "")
	return text
}

// Analyze scores text with the default 6–12 grade range.
func Analyze(text string) domain.ReadabilityResult {
	return NewScorer(DefaultMinGrade, DefaultMaxGrade).Analyze(text)
}

// Analyze computes sentence, word and syllable counts plus Flesch-Kincaid
// grade level and Flesch reading ease, both rounded to two decimals.
func (s *Scorer) Analyze(text string) domain.ReadabilityResult {
	clean := StripMarkdown(text)

	// The final sentence needs no trailing whitespace to count.
	sentences := len(sentencePattern.FindAllString(clean, -1)) + 1

	words := wordPattern.FindAllString(clean, -1)
	syllables := 0
	for _, w := range words {
		syllables += CountSyllables(w)
	}

	result := domain.ReadabilityResult{
		Sentences:   sentences,
		Words:       len(words),
		Syllables:   syllables,
		GradeLevel:  0,
		ReadingEase: 100,
	}

	if result.Words > 0 && result.Sentences > 0 {
		wordsPerSentence := float64(result.Words) / float64(result.Sentences)
		syllablesPerWord := float64(result.Syllables) / float64(result.Words)
		result.GradeLevel = round2(0.39*wordsPerSentence + 11.8*syllablesPerWord - 15.59)
		result.ReadingEase = round2(206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord)
	}

	result.Valid = s.WithinTarget(result.GradeLevel)
	return result
}

// WithinTarget reports whether grade lies in the scorer's inclusive range.
func (s *Scorer) WithinTarget(grade float64) bool {
	return grade >= s.minGrade && grade <= s.maxGrade
}

// round2 rounds half up to two decimals.
func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
