package memory

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// BlobStore is an in-memory storage.Storage recording uploaded objects.
type BlobStore struct {
	mu      sync.RWMutex
	objects map[string][]byte

	// FailUploads makes every Upload call fail; used to exercise the
	// nothing-persisted-on-upload-failure path.
	FailUploads bool
}

// NewBlobStore creates an empty in-memory blob store.
func NewBlobStore() *BlobStore {
	return &BlobStore{objects: make(map[string][]byte)}
}

// Upload buffers the object under key.
func (s *BlobStore) Upload(_ context.Context, key string, reader io.Reader, _ int64, _ string) error {
	if s.FailUploads {
		return fmt.Errorf("upload %q: store unavailable", key)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

// Delete removes the object at key.
func (s *BlobStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// PublicURL returns a synthetic but stable URL for key.
func (s *BlobStore) PublicURL(key string) string {
	return "http://blob.local/pets-bucket/" + key
}

// Object returns the stored bytes for key and whether it exists.
func (s *BlobStore) Object(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	return data, ok
}

// Len returns the number of stored objects.
func (s *BlobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
