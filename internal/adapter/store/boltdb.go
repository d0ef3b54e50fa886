package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"bookcheck/internal/domain"
	"go.etcd.io/bbolt"
)

var (
	bucketSources = []byte("sources")
	bucketMeta    = []byte("meta")
)

// BoltStore caches prepared known sources keyed by their absolute path.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketSources, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

type sourceMeta struct {
	ModTime     int64    `json:"mod_time"`
	Fingerprint string   `json:"fingerprint"`
	NGrams      []string `json:"ngrams"`
}

func (s *BoltStore) PutSource(src domain.Source) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		ngrams := make([]string, 0, len(src.NGrams))
		for g := range src.NGrams {
			ngrams = append(ngrams, g)
		}
		sort.Strings(ngrams)

		data, err := json.Marshal(sourceMeta{
			ModTime:     src.ModTime,
			Fingerprint: src.Fingerprint,
			NGrams:      ngrams,
		})
		if err != nil {
			return err
		}
		return tx.Bucket(bucketSources).Put([]byte(src.Path), data)
	})
}

func (s *BoltStore) GetSource(path string) (domain.Source, bool, error) {
	var (
		src   domain.Source
		found bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketSources).Get([]byte(path))
		if data == nil {
			return nil
		}
		decoded, err := decodeSource(path, data)
		if err != nil {
			return err
		}
		src, found = decoded, true
		return nil
	})
	return src, found, err
}

func (s *BoltStore) DeleteSource(path string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSources).Delete([]byte(path))
	})
}

// ListSources returns every cached source ordered by path.
func (s *BoltStore) ListSources() ([]domain.Source, error) {
	var sources []domain.Source
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSources).ForEach(func(k, v []byte) error {
			src, err := decodeSource(string(k), v)
			if err != nil {
				return err
			}
			sources = append(sources, src)
			return nil
		})
	})
	return sources, err
}

// Count returns the number of cached sources.
func (s *BoltStore) Count() (int, error) {
	var n int
	err := s.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(bucketSources).Stats().KeyN
		return nil
	})
	return n, err
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func decodeSource(path string, data []byte) (domain.Source, error) {
	var meta sourceMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return domain.Source{}, fmt.Errorf("corrupt cache entry for %s: %w", path, err)
	}
	ngrams := make(map[string]struct{}, len(meta.NGrams))
	for _, g := range meta.NGrams {
		ngrams[g] = struct{}{}
	}
	return domain.Source{
		Path:        path,
		ModTime:     meta.ModTime,
		Fingerprint: meta.Fingerprint,
		NGrams:      ngrams,
	}, nil
}
