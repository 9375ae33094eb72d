package save

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Store.Get for a missing key.
var ErrNotFound = errors.New("save: not found")

// Store holds opaque blobs by key.
type Store interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// MemoryStore keeps blobs in a map. Tests and headless runs use it.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte

	// FailPuts makes every Put fail, for exercising error paths.
	FailPuts bool
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

var errPutRefused = errors.New("save: memory store refusing writes")

func (s *MemoryStore) Put(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailPuts {
		return errPutRefused
	}
	s.data[key] = append([]byte(nil), data...)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
