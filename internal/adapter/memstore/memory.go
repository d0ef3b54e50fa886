package memstore

import (
	"sort"
	"sync"

	"bookcheck/internal/domain"
	"bookcheck/internal/port"
)

// MemoryStore is a CorpusStore that lives for a single run.
type MemoryStore struct {
	mu      sync.RWMutex
	sources map[string]domain.Source
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sources: make(map[string]domain.Source),
	}
}

func (s *MemoryStore) PutSource(src domain.Source) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources[src.Path] = src
	return nil
}

func (s *MemoryStore) GetSource(path string) (domain.Source, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src, ok := s.sources[path]
	return src, ok, nil
}

func (s *MemoryStore) DeleteSource(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sources, path)
	return nil
}

func (s *MemoryStore) ListSources() ([]domain.Source, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sources := make([]domain.Source, 0, len(s.sources))
	for _, src := range s.sources {
		sources = append(sources, src)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].Path < sources[j].Path })
	return sources, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

var _ port.CorpusStore = (*MemoryStore)(nil)
