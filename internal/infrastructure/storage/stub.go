package storage

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/labelgen/backend/internal/application/upload"
	"github.com/labelgen/backend/internal/domain/shared"
)

// Ensure StubObjectStorage implements the upload port
var _ upload.ObjectStorage = (*StubObjectStorage)(nil)

// stubObject holds one stored object in memory
type stubObject struct {
	data        []byte
	contentType string
}

// StubObjectStorage keeps objects in memory. Use it for development and
// tests where neither disk nor a bucket should be touched.
type StubObjectStorage struct {
	mu      sync.RWMutex
	objects map[string]stubObject
}

// NewStubObjectStorage creates a new StubObjectStorage
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{objects: make(map[string]stubObject)}
}

// Put stores an object in memory
func (s *StubObjectStorage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return shared.NewDomainError("INVALID_INPUT", "Storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]byte, len(data))
	copy(copied, data)
	s.objects[key] = stubObject{data: copied, contentType: contentType}
	return nil
}

// Open returns a reader over the stored bytes
func (s *StubObjectStorage) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	s.mu.RLock()
	obj, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return nil, "", shared.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), obj.contentType, nil
}

// Delete removes an object. Deleting a missing object is not an error.
func (s *StubObjectStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// Len reports how many objects are stored
func (s *StubObjectStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
