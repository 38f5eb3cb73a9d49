package archive

import (
	"context"
	"fmt"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
)

const DefaultMemoryCapacity = 64

// MemoryStore keeps the most recently archived proposals; older ones are evicted.
type MemoryStore struct {
	cache *lru.Cache[string, []byte]
}

func NewMemoryStore(capacity int) (*MemoryStore, error) {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	cache, err := lru.New[string, []byte](capacity)
	if err != nil {
		return nil, fmt.Errorf("init proposal cache: %w", err)
	}
	return &MemoryStore{cache: cache}, nil
}

func (s *MemoryStore) Put(_ context.Context, id string, pdf []byte) error {
	id, err := normalizeID(id)
	if err != nil {
		return err
	}
	s.cache.Add(objectKey(id), append([]byte(nil), pdf...))
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) ([]byte, error) {
	id, err := normalizeID(id)
	if err != nil {
		return nil, err
	}
	raw, ok := s.cache.Get(objectKey(id))
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), raw...), nil
}

func (s *MemoryStore) List(_ context.Context) ([]string, error) {
	keys := s.cache.Keys()
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if id, ok := idFromKey(k); ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out, nil
}
