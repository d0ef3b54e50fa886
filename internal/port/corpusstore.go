package port

import "bookcheck/internal/domain"

// CorpusStore persists prepared known sources between runs so unchanged
// reference files are not re-tokenized.
type CorpusStore interface {
	PutSource(src domain.Source) error

	GetSource(path string) (domain.Source, bool, error)

	DeleteSource(path string) error

	ListSources() ([]domain.Source, error)

	Close() error
}
