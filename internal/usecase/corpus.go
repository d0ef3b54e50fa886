package usecase

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bookcheck/internal/adapter/similarity"
	"bookcheck/internal/domain"
	"bookcheck/internal/logging"
	"bookcheck/internal/port"
)

// CorpusUseCase loads the known-source corpus from a directory, reusing
// prepared sources from the store when their files are unchanged.
type CorpusUseCase struct {
	store    port.CorpusStore
	walker   port.FileWalker
	reader   port.TextReader
	detector *similarity.Detector
	logger   *logging.Logger
}

// NewCorpusUseCase creates a new corpus use case.
func NewCorpusUseCase(
	store port.CorpusStore,
	walker port.FileWalker,
	reader port.TextReader,
	detector *similarity.Detector,
	logger *logging.Logger,
) *CorpusUseCase {
	return &CorpusUseCase{
		store:    store,
		walker:   walker,
		reader:   reader,
		detector: detector,
		logger:   logger,
	}
}

// CorpusResult contains the loaded corpus and what the load did.
type CorpusResult struct {
	Corpus  *domain.Corpus
	Added   int
	Reused  int
	Removed int
	Errors  []string
}

// Load builds the corpus from every source file under dir, ordered by path.
// A missing directory yields an empty corpus. Unreadable sources are logged,
// recorded in Errors and left out.
func (u *CorpusUseCase) Load(dir string, progress ProgressFunc) (*CorpusResult, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid sources directory: %w", err)
	}

	result := &CorpusResult{Corpus: &domain.Corpus{Dir: dir}}

	info, err := os.Stat(absDir)
	if errors.Is(err, os.ErrNotExist) {
		u.logger.Info("Sources directory %s does not exist, using an empty corpus", dir)
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat sources directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("sources path %s is not a directory", dir)
	}

	files, err := u.walker.Walk(absDir)
	if err != nil {
		return nil, fmt.Errorf("failed to walk sources: %w", err)
	}

	seen := make(map[string]bool, len(files))
	for i, file := range files {
		seen[file.Path] = true

		src, reused, err := u.prepare(file)
		if err != nil {
			u.logger.Error("Error reading source file %s: %v", file.Path, err)
			result.Errors = append(result.Errors, err.Error())
		} else {
			result.Corpus.Sources = append(result.Corpus.Sources, src)
			if reused {
				result.Reused++
			} else {
				result.Added++
			}
		}

		if progress != nil {
			progress(i+1, len(files))
		}
	}

	cached, err := u.store.ListSources()
	if err != nil {
		return nil, fmt.Errorf("failed to list cached sources: %w", err)
	}
	prefix := absDir + string(filepath.Separator)
	for _, src := range cached {
		if !strings.HasPrefix(src.Path, prefix) || seen[src.Path] {
			continue
		}
		if err := u.store.DeleteSource(src.Path); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to delete %s: %v", src.Path, err))
			continue
		}
		result.Removed++
	}

	u.logger.Debug("corpus %s: %d added, %d reused, %d removed", dir, result.Added, result.Reused, result.Removed)
	return result, nil
}

func (u *CorpusUseCase) prepare(file port.FileInfo) (domain.Source, bool, error) {
	cached, ok, err := u.store.GetSource(file.Path)
	if err != nil {
		u.logger.Debug("cache lookup for %s failed: %v", file.Path, err)
	} else if ok && cached.ModTime == file.ModTime {
		return cached, true, nil
	}

	doc, err := readDocument(u.reader, file)
	if err != nil {
		return domain.Source{}, false, err
	}

	src := u.detector.PrepareSource(doc.Path, doc.Text, file.ModTime)
	if err := u.store.PutSource(src); err != nil {
		u.logger.Error("failed to cache source %s: %v", file.Path, err)
	}
	return src, false, nil
}
