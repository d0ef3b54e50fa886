package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bookcheck/internal/adapter/analyzer"
	"bookcheck/internal/adapter/fs"
	"bookcheck/internal/adapter/memstore"
	"bookcheck/internal/adapter/readability"
	"bookcheck/internal/adapter/similarity"
	"bookcheck/internal/domain"
	"bookcheck/internal/logging"
	"bookcheck/internal/port"
)

const sourceText = "Lucid dreaming lets sleepers recognize impossible scenery and steer nightmares toward calmer endings."

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// failingReader fails for paths ending in the given suffix.
type failingReader struct {
	inner  port.TextReader
	suffix string
}

func (r failingReader) ReadText(path string) (string, error) {
	if strings.HasSuffix(path, r.suffix) {
		return "", &domain.FileReadError{Path: path, Err: os.ErrPermission}
	}
	return r.inner.ReadText(path)
}

func newDetector() *similarity.Detector {
	return similarity.NewDetector(analyzer.NewTokenizer(analyzer.DefaultStopWords()), 3, 0.3)
}

func TestRunBatch_PreservesOrder(t *testing.T) {
	files := make([]port.FileInfo, 50)
	for i := range files {
		files[i] = port.FileInfo{Path: string(rune('a' + i%26)), Size: int64(i)}
	}

	var calls int
	results, err := runBatch(context.Background(), files, 4, func(done, total int) {
		calls++
		if total != len(files) {
			t.Errorf("expected total %d, got %d", len(files), total)
		}
	}, func(f port.FileInfo) int64 {
		return f.Size
	})
	if err != nil {
		t.Fatal(err)
	}

	for i, r := range results {
		if r != int64(i) {
			t.Fatalf("result %d out of order: got %d", i, r)
		}
	}
	if calls != len(files) {
		t.Errorf("expected %d progress calls, got %d", len(files), calls)
	}
}

func TestRunBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runBatch(ctx, []port.FileInfo{{Path: "a"}}, 1, nil, func(port.FileInfo) bool { return true })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCorpusUseCase_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"), sourceText)
	writeFile(t, filepath.Join(dir, "a.txt"), "Another reference about sleep paralysis and hypnagogic imagery.")
	writeFile(t, filepath.Join(dir, "notes.md"), "ignored")

	st := memstore.NewMemoryStore()
	uc := NewCorpusUseCase(st, fs.NewWalker([]string{"**/*.txt"}, nil), fs.NewReader(), newDetector(), logging.NewDiscardLogger())

	result, err := uc.Load(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.Corpus.Len() != 2 || result.Added != 2 {
		t.Fatalf("expected 2 added sources, got %+v", result)
	}
	if !strings.HasSuffix(result.Corpus.Sources[0].Path, "a.txt") {
		t.Errorf("expected sources ordered by path, got %s first", result.Corpus.Sources[0].Path)
	}

	result, err = uc.Load(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.Reused != 2 || result.Added != 0 {
		t.Errorf("expected second load to reuse cache, got %+v", result)
	}

	if err := os.Remove(filepath.Join(dir, "a.txt")); err != nil {
		t.Fatal(err)
	}
	result, err = uc.Load(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.Removed != 1 || result.Corpus.Len() != 1 {
		t.Errorf("expected one removed source, got %+v", result)
	}
}

func TestCorpusUseCase_MissingDir(t *testing.T) {
	uc := NewCorpusUseCase(memstore.NewMemoryStore(), fs.NewWalker(nil, nil), fs.NewReader(), newDetector(), logging.NewDiscardLogger())

	result, err := uc.Load(filepath.Join(t.TempDir(), "references"), nil)
	if err != nil {
		t.Fatalf("missing sources dir should not be an error: %v", err)
	}
	if result.Corpus.Len() != 0 {
		t.Errorf("expected empty corpus, got %d sources", result.Corpus.Len())
	}
}

func TestCorpusUseCase_UnreadableSourceSkipped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "good.txt"), sourceText)
	writeFile(t, filepath.Join(dir, "bad.txt"), sourceText)

	reader := failingReader{inner: fs.NewReader(), suffix: "bad.txt"}
	uc := NewCorpusUseCase(memstore.NewMemoryStore(), fs.NewWalker([]string{"**/*.txt"}, nil), reader, newDetector(), logging.NewDiscardLogger())

	result, err := uc.Load(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.Corpus.Len() != 1 || len(result.Errors) != 1 {
		t.Errorf("expected 1 source and 1 error, got %d and %v", result.Corpus.Len(), result.Errors)
	}
}

func TestCitationUseCase_Run(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ch1.md"), "Dreams recur (Smith, 2020).\n\nSmith, J. (2020). Dreams. Press.\n")
	writeFile(t, filepath.Join(dir, "ch2.md"), "As Jones (2019) noted.\n")

	uc := NewCitationUseCase(fs.NewWalker([]string{"**/*.md"}, nil), fs.NewReader(), 2, logging.NewDiscardLogger())
	summary, err := uc.Run(context.Background(), dir, nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(summary.Reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(summary.Reports))
	}
	if !summary.Clean() {
		t.Errorf("expected clean run, got %d errors", summary.TotalErrors)
	}
	first := summary.Reports[0]
	if !strings.HasSuffix(first.Path, "ch1.md") || len(first.Citations) != 1 || len(first.References) != 1 {
		t.Errorf("unexpected first report: %+v", first)
	}
}

func TestCitationUseCase_FileErrorCounts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ok.md"), "Plain prose.")
	writeFile(t, filepath.Join(dir, "locked.md"), "Plain prose.")

	reader := failingReader{inner: fs.NewReader(), suffix: "locked.md"}
	uc := NewCitationUseCase(fs.NewWalker([]string{"**/*.md"}, nil), reader, 0, logging.NewDiscardLogger())
	summary, err := uc.Run(context.Background(), dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if summary.TotalErrors != 1 || summary.Clean() {
		t.Errorf("expected one error from the unreadable file, got %d", summary.TotalErrors)
	}
	if summary.Reports[0].Error == "" {
		t.Errorf("expected locked.md (sorted first) to carry an error")
	}
}

func TestCitationUseCase_InvalidTarget(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "notes.txt"), "text")

	uc := NewCitationUseCase(fs.NewWalker([]string{"**/*.md"}, nil), fs.NewReader(), 0, logging.NewDiscardLogger())
	for _, target := range []string{filepath.Join(dir, "notes.txt"), filepath.Join(dir, "missing")} {
		if _, err := uc.Run(context.Background(), target, nil); !errors.Is(err, domain.ErrInvalidTarget) {
			t.Errorf("%s: expected ErrInvalidTarget, got %v", target, err)
		}
	}
}

func TestPlagiarismUseCase_Run(t *testing.T) {
	dir := t.TempDir()
	refs := filepath.Join(dir, "refs")
	writeFile(t, filepath.Join(refs, "source.txt"), sourceText)
	writeFile(t, filepath.Join(dir, "book", "copied.md"), sourceText)
	writeFile(t, filepath.Join(dir, "book", "original.md"), "Completely unrelated prose concerning gardening tools and seasonal pruning.")

	detector := newDetector()
	corpusUC := NewCorpusUseCase(memstore.NewMemoryStore(), fs.NewWalker([]string{"**/*.txt"}, nil), fs.NewReader(), detector, logging.NewDiscardLogger())
	loaded, err := corpusUC.Load(refs, nil)
	if err != nil {
		t.Fatal(err)
	}

	uc := NewPlagiarismUseCase(fs.NewWalker([]string{"**/*.md", "**/*.txt"}, nil), fs.NewReader(), detector, 2, logging.NewDiscardLogger())
	summary, err := uc.Run(context.Background(), filepath.Join(dir, "book"), loaded.Corpus, nil)
	if err != nil {
		t.Fatal(err)
	}

	if summary.FilesAnalyzed != 2 || summary.Flagged != 1 {
		t.Fatalf("expected 2 analyzed and 1 flagged, got %+v", summary)
	}
	if summary.Clean() {
		t.Error("expected run with a copied file not to be clean")
	}
	copied := summary.Reports[0]
	if !copied.IsPlagiarized || copied.OverallSimilarity != 1.0 {
		t.Errorf("expected copied.md to be an exact match, got %+v", copied.SimilarityResult)
	}
	if summary.Reports[1].IsPlagiarized {
		t.Error("expected original.md to be clean")
	}
}

func TestPlagiarismUseCase_SkipsCorpusDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ch1.md"), "Completely unrelated prose concerning gardening tools and seasonal pruning.")
	writeFile(t, filepath.Join(dir, "references", "a.txt"), sourceText)

	detector := newDetector()
	corpusUC := NewCorpusUseCase(memstore.NewMemoryStore(), fs.NewWalker([]string{"**/*.txt"}, nil), fs.NewReader(), detector, logging.NewDiscardLogger())
	loaded, err := corpusUC.Load(filepath.Join(dir, "references"), nil)
	if err != nil {
		t.Fatal(err)
	}

	uc := NewPlagiarismUseCase(fs.NewWalker([]string{"**/*.md", "**/*.txt"}, nil), fs.NewReader(), detector, 0, logging.NewDiscardLogger())
	summary, err := uc.Run(context.Background(), dir, loaded.Corpus, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(summary.Reports) != 1 || !strings.HasSuffix(summary.Reports[0].Path, "ch1.md") {
		t.Fatalf("expected only ch1.md checked, got %+v", summary.Reports)
	}
	if !summary.Clean() {
		t.Error("expected clean run once the corpus dir is skipped")
	}

	summary, err = uc.Run(context.Background(), filepath.Join(dir, "references", "a.txt"), loaded.Corpus, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(summary.Reports) != 1 || !summary.Reports[0].IsPlagiarized {
		t.Error("expected an explicitly named source file to still be checked")
	}
}

func TestPlagiarismUseCase_EmptyCorpus(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "chapter.md"), sourceText)

	uc := NewPlagiarismUseCase(fs.NewWalker([]string{"**/*.md"}, nil), fs.NewReader(), newDetector(), 0, logging.NewDiscardLogger())
	summary, err := uc.Run(context.Background(), dir, &domain.Corpus{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !summary.Clean() || summary.Reports[0].OverallSimilarity != 0 {
		t.Errorf("expected clean result against empty corpus, got %+v", summary)
	}
}

func TestReadabilityUseCase_Run(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "simple.md"), "The cat sat. The dog ran.")
	writeFile(t, filepath.Join(dir, "dense.md"), "Institutional epistemological considerations notwithstanding, "+
		"contemporary phenomenological investigations systematically demonstrate extraordinarily "+
		"complicated interdependencies characterizing consciousness.")

	uc := NewReadabilityUseCase(fs.NewWalker([]string{"**/*.md"}, nil), fs.NewReader(), readability.NewScorer(6, 12), 0, logging.NewDiscardLogger())
	summary, err := uc.Run(context.Background(), dir, nil)
	if err != nil {
		t.Fatal(err)
	}

	if summary.FilesAnalyzed != 2 {
		t.Fatalf("expected 2 files analyzed, got %d", summary.FilesAnalyzed)
	}
	if summary.WithinRange != 0 || summary.Clean() {
		t.Errorf("expected both files outside 6-12, got %d within", summary.WithinRange)
	}
	want := (summary.Reports[0].GradeLevel + summary.Reports[1].GradeLevel) / 2
	if diff := summary.AverageGrade - want; diff > 0.006 || diff < -0.006 {
		t.Errorf("expected average grade near %.2f, got %.2f", want, summary.AverageGrade)
	}
}

func TestReadabilityUseCase_NoFilesIsClean(t *testing.T) {
	uc := NewReadabilityUseCase(fs.NewWalker([]string{"**/*.md"}, nil), fs.NewReader(), readability.NewScorer(6, 12), 0, logging.NewDiscardLogger())
	summary, err := uc.Run(context.Background(), t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !summary.Clean() || summary.AverageGrade != 0 {
		t.Errorf("expected empty clean summary, got %+v", summary)
	}
}
