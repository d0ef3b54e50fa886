package usecase

import (
	"context"

	"bookcheck/internal/adapter/citation"
	"bookcheck/internal/adapter/fs"
	"bookcheck/internal/domain"
	"bookcheck/internal/logging"
	"bookcheck/internal/port"
)

// CitationUseCase validates APA citations across a file or directory.
type CitationUseCase struct {
	walker  port.FileWalker
	reader  port.TextReader
	workers int
	logger  *logging.Logger
}

func NewCitationUseCase(walker port.FileWalker, reader port.TextReader, workers int, logger *logging.Logger) *CitationUseCase {
	return &CitationUseCase{
		walker:  walker,
		reader:  reader,
		workers: workers,
		logger:  logger,
	}
}

// CitationSummary aggregates a citation run. TotalErrors counts unreadable
// files plus invalid citations and references.
type CitationSummary struct {
	Reports     []domain.CitationReport `json:"results"`
	TotalErrors int                     `json:"total_errors"`
}

// Clean reports whether the run found no errors.
func (s *CitationSummary) Clean() bool {
	return s.TotalErrors == 0
}

// Run validates every markdown file the target resolves to.
func (u *CitationUseCase) Run(ctx context.Context, target string, progress ProgressFunc) (*CitationSummary, error) {
	files, err := fs.ResolveTarget(target, u.walker)
	if err != nil {
		return nil, err
	}
	u.logger.Debug("validating citations in %d files", len(files))

	reports, err := runBatch(ctx, files, u.workers, progress, u.validateFile)
	if err != nil {
		return nil, err
	}

	summary := &CitationSummary{Reports: reports}
	for _, r := range reports {
		if r.Error != "" {
			summary.TotalErrors++
			continue
		}
		summary.TotalErrors += r.InvalidCount()
	}
	return summary, nil
}

func (u *CitationUseCase) validateFile(file port.FileInfo) domain.CitationReport {
	doc, err := readDocument(u.reader, file)
	if err != nil {
		return domain.CitationReport{
			Path:       file.Path,
			Citations:  []domain.Citation{},
			References: []domain.Citation{},
			Error:      err.Error(),
		}
	}
	return citation.ValidateDocument(doc.Path, doc.Text)
}
