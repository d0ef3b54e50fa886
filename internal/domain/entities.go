package domain

// Document is a unit of text read from a file. It is read once per run and
// never modified afterwards.
type Document struct {
	Path string
	Text string
}

// CitationKind tags the shape a citation candidate was matched against.
type CitationKind string

const (
	KindInText        CitationKind = "in-text"
	KindParenthetical CitationKind = "parenthetical"
	KindReference     CitationKind = "reference"
)

// Citation is a citation or reference-list candidate found in a document.
// Line is 1-based; 0 means no single line contains the matched text.
type Citation struct {
	Text  string       `json:"text"`
	Kind  CitationKind `json:"type"`
	Line  int          `json:"line"`
	Valid bool         `json:"is_valid"`
}

// CitationReport is the validation outcome for one file.
type CitationReport struct {
	Path       string     `json:"file_path"`
	Citations  []Citation `json:"citations"`
	References []Citation `json:"references"`
	Valid      bool       `json:"is_valid"`
	Error      string     `json:"error,omitempty"`
}

// InvalidCount returns the number of citations and references that failed validation.
func (r CitationReport) InvalidCount() int {
	n := 0
	for _, c := range r.Citations {
		if !c.Valid {
			n++
		}
	}
	for _, c := range r.References {
		if !c.Valid {
			n++
		}
	}
	return n
}

// MatchKind tells how a known source matched.
type MatchKind string

const (
	MatchNGram MatchKind = "n-gram"
	MatchExact MatchKind = "exact-match"
)

// Match links checked content to a known source by its corpus index.
type Match struct {
	SourceIndex int       `json:"source_index"`
	SourcePath  string    `json:"source_path,omitempty"`
	Similarity  float64   `json:"similarity"`
	Kind        MatchKind `json:"type"`
}

// SimilarityResult is the outcome of checking content against the corpus.
// IsPlagiarized is true iff Matches is non-empty.
type SimilarityResult struct {
	Fingerprint       string  `json:"fingerprint"`
	OverallSimilarity float64 `json:"overall_similarity"`
	Matches           []Match `json:"matches"`
	IsPlagiarized     bool    `json:"is_plagiarized"`
}

// PlagiarismReport is the similarity outcome for one file.
type PlagiarismReport struct {
	Path string `json:"file_path"`
	SimilarityResult
	Error string `json:"error,omitempty"`
}

// ReadabilityResult holds Flesch metrics for a text. When Words is 0 the
// grade level is 0 and reading ease is 100.
type ReadabilityResult struct {
	Sentences   int     `json:"sentences"`
	Words       int     `json:"words"`
	Syllables   int     `json:"syllables"`
	GradeLevel  float64 `json:"grade_level"`
	ReadingEase float64 `json:"reading_ease"`
	Valid       bool    `json:"is_valid"`
}

// ReadabilityReport is the readability outcome for one file.
type ReadabilityReport struct {
	Path string `json:"file_path"`
	ReadabilityResult
	Error string `json:"error,omitempty"`
}

// Source is a known reference text prepared for comparison. Its position in
// the corpus is the index reported by Match.SourceIndex.
type Source struct {
	Path        string
	ModTime     int64
	Fingerprint string
	NGrams      map[string]struct{}
}

// Corpus is the ordered, read-only collection of known sources for a run.
type Corpus struct {
	Dir     string
	Sources []Source
}

// Len returns the number of sources in the corpus.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Sources)
}
