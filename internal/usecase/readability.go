package usecase

import (
	"context"
	"math"

	"bookcheck/internal/adapter/fs"
	"bookcheck/internal/adapter/readability"
	"bookcheck/internal/domain"
	"bookcheck/internal/logging"
	"bookcheck/internal/port"
)

// ReadabilityUseCase scores markdown files against a target grade range.
type ReadabilityUseCase struct {
	walker  port.FileWalker
	reader  port.TextReader
	scorer  *readability.Scorer
	workers int
	logger  *logging.Logger
}

func NewReadabilityUseCase(
	walker port.FileWalker,
	reader port.TextReader,
	scorer *readability.Scorer,
	workers int,
	logger *logging.Logger,
) *ReadabilityUseCase {
	return &ReadabilityUseCase{
		walker:  walker,
		reader:  reader,
		scorer:  scorer,
		workers: workers,
		logger:  logger,
	}
}

type ReadabilitySummary struct {
	Reports       []domain.ReadabilityReport `json:"results"`
	FilesAnalyzed int                        `json:"files_analyzed"`
	WithinRange   int                        `json:"within_range"`
	AverageGrade  float64                    `json:"average_grade_level"`
	FileErrors    int                        `json:"file_errors"`
}

// Clean reports whether every readable file is in range and none failed.
func (s *ReadabilitySummary) Clean() bool {
	return s.WithinRange == s.FilesAnalyzed && s.FileErrors == 0
}

func (u *ReadabilityUseCase) Run(ctx context.Context, target string, progress ProgressFunc) (*ReadabilitySummary, error) {
	files, err := fs.ResolveTarget(target, u.walker)
	if err != nil {
		return nil, err
	}
	u.logger.Debug("scoring readability of %d files", len(files))

	reports, err := runBatch(ctx, files, u.workers, progress, func(file port.FileInfo) domain.ReadabilityReport {
		doc, err := readDocument(u.reader, file)
		if err != nil {
			return domain.ReadabilityReport{Path: file.Path, Error: err.Error()}
		}
		return domain.ReadabilityReport{
			Path:              doc.Path,
			ReadabilityResult: u.scorer.Analyze(doc.Text),
		}
	})
	if err != nil {
		return nil, err
	}

	summary := &ReadabilitySummary{Reports: reports}
	total := 0.0
	for _, r := range reports {
		if r.Error != "" {
			summary.FileErrors++
			continue
		}
		summary.FilesAnalyzed++
		total += r.GradeLevel
		if r.Valid {
			summary.WithinRange++
		}
	}
	if summary.FilesAnalyzed > 0 {
		summary.AverageGrade = math.Floor(total/float64(summary.FilesAnalyzed)*100+0.5) / 100
	}
	return summary, nil
}
