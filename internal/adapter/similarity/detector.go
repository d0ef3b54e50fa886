package similarity

import (
	"bookcheck/internal/adapter/analyzer"
	"bookcheck/internal/domain"
	"bookcheck/internal/port"
)

// DefaultThreshold is the Jaccard score a source must exceed to be flagged.
const DefaultThreshold = 0.3

// Detector compares content against known sources by n-gram overlap and by
// exact fingerprint. It holds no mutable state and is safe for concurrent use.
type Detector struct {
	tokenizer port.Tokenizer
	n         int
	threshold float64
}

// NewDetector creates a detector using n-grams of size n.
func NewDetector(tokenizer port.Tokenizer, n int, threshold float64) *Detector {
	if n <= 0 {
		n = analyzer.DefaultNGramSize
	}
	return &Detector{
		tokenizer: tokenizer,
		n:         n,
		threshold: threshold,
	}
}

// NGramSize returns the window length the detector uses.
func (d *Detector) NGramSize() int {
	return d.n
}

// Threshold returns the flagging threshold.
func (d *Detector) Threshold() float64 {
	return d.threshold
}

// PrepareSource tokenizes a known source once so it can be compared many times.
func (d *Detector) PrepareSource(path, text string, modTime int64) domain.Source {
	return domain.Source{
		Path:        path,
		ModTime:     modTime,
		Fingerprint: analyzer.Fingerprint(text),
		NGrams:      analyzer.NGramSet(analyzer.BuildNGrams(d.tokenizer.Tokenize(text), d.n)),
	}
}

// Check scores content against every source. A source whose similarity is
// strictly above the threshold yields an n-gram match; a source with an equal
// fingerprint yields an exact match. Overall similarity is the highest score
// seen, or 1.0 when any exact match exists.
func (d *Detector) Check(content string, sources []domain.Source) domain.SimilarityResult {
	contentNGrams := analyzer.NGramSet(analyzer.BuildNGrams(d.tokenizer.Tokenize(content), d.n))
	fingerprint := analyzer.Fingerprint(content)

	result := domain.SimilarityResult{
		Fingerprint: fingerprint,
		Matches:     []domain.Match{},
	}

	maxSimilarity := 0.0
	for i, src := range sources {
		sim := analyzer.JaccardSets(contentNGrams, src.NGrams)
		if sim > d.threshold {
			result.Matches = append(result.Matches, domain.Match{
				SourceIndex: i,
				SourcePath:  src.Path,
				Similarity:  sim,
				Kind:        domain.MatchNGram,
			})
		}
		if sim > maxSimilarity {
			maxSimilarity = sim
		}
	}

	for i, src := range sources {
		if src.Fingerprint == fingerprint {
			result.Matches = append(result.Matches, domain.Match{
				SourceIndex: i,
				SourcePath:  src.Path,
				Similarity:  1.0,
				Kind:        domain.MatchExact,
			})
			maxSimilarity = 1.0
		}
	}

	result.OverallSimilarity = maxSimilarity
	result.IsPlagiarized = len(result.Matches) > 0
	return result
}

// Check is a one-shot comparison of content against raw source texts using
// the default stop words and n-gram size.
func Check(content string, knownSources []string, threshold float64) domain.SimilarityResult {
	d := NewDetector(analyzer.NewTokenizer(analyzer.DefaultStopWords()), analyzer.DefaultNGramSize, threshold)
	sources := make([]domain.Source, len(knownSources))
	for i, text := range knownSources {
		sources[i] = d.PrepareSource("", text, 0)
	}
	return d.Check(content, sources)
}
