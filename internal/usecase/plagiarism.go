package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bookcheck/internal/adapter/fs"
	"bookcheck/internal/adapter/similarity"
	"bookcheck/internal/domain"
	"bookcheck/internal/logging"
	"bookcheck/internal/port"
)

// PlagiarismUseCase checks documents against a loaded corpus.
type PlagiarismUseCase struct {
	walker   port.FileWalker
	reader   port.TextReader
	detector *similarity.Detector
	workers  int
	logger   *logging.Logger
}

func NewPlagiarismUseCase(
	walker port.FileWalker,
	reader port.TextReader,
	detector *similarity.Detector,
	workers int,
	logger *logging.Logger,
) *PlagiarismUseCase {
	return &PlagiarismUseCase{
		walker:   walker,
		reader:   reader,
		detector: detector,
		workers:  workers,
		logger:   logger,
	}
}

// PlagiarismSummary aggregates a plagiarism run. FilesAnalyzed excludes
// files that could not be read.
type PlagiarismSummary struct {
	Reports       []domain.PlagiarismReport `json:"results"`
	FilesAnalyzed int                       `json:"files_analyzed"`
	Flagged       int                       `json:"flagged"`
	FileErrors    int                       `json:"file_errors"`
}

// Clean reports whether no file was flagged or failed.
func (s *PlagiarismSummary) Clean() bool {
	return s.Flagged == 0 && s.FileErrors == 0
}

// Run checks every markdown or text file the target resolves to. When the
// target is a directory, files inside the corpus directory are skipped. The
// corpus is only read, so it is shared across workers.
func (u *PlagiarismUseCase) Run(ctx context.Context, target string, corpus *domain.Corpus, progress ProgressFunc) (*PlagiarismSummary, error) {
	files, err := fs.ResolveTarget(target, u.walker)
	if err != nil {
		return nil, err
	}

	var sources []domain.Source
	if corpus != nil {
		sources = corpus.Sources
		if info, err := os.Stat(target); err == nil && info.IsDir() && corpus.Dir != "" {
			files, err = excludeDir(files, corpus.Dir)
			if err != nil {
				return nil, err
			}
		}
	}
	u.logger.Debug("checking %d files against %d sources (n=%d, threshold=%g)",
		len(files), corpus.Len(), u.detector.NGramSize(), u.detector.Threshold())

	reports, err := runBatch(ctx, files, u.workers, progress, func(file port.FileInfo) domain.PlagiarismReport {
		doc, err := readDocument(u.reader, file)
		if err != nil {
			return domain.PlagiarismReport{Path: file.Path, Error: err.Error()}
		}
		return domain.PlagiarismReport{
			Path:             doc.Path,
			SimilarityResult: u.detector.Check(doc.Text, sources),
		}
	})
	if err != nil {
		return nil, err
	}

	summary := &PlagiarismSummary{Reports: reports}
	for _, r := range reports {
		if r.Error != "" {
			summary.FileErrors++
			continue
		}
		summary.FilesAnalyzed++
		if r.IsPlagiarized {
			summary.Flagged++
		}
	}
	return summary, nil
}

// excludeDir drops files located under dir.
func excludeDir(files []port.FileInfo, dir string) ([]port.FileInfo, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid sources directory: %w", err)
	}
	prefix := absDir + string(filepath.Separator)

	kept := files[:0]
	for _, f := range files {
		if strings.HasPrefix(f.Path, prefix) {
			continue
		}
		kept = append(kept, f)
	}
	return kept, nil
}
