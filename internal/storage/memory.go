package storage

import (
	"context"
	"strings"
	"sync"
)

type memoryObject struct {
	contentType string
	data        []byte
}

// MemoryStore keeps objects in process memory. It stands in for a real
// bucket in development and tests; URLs are baseURL/key.
type MemoryStore struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]memoryObject
}

// NewMemoryStore builds an empty store serving URLs under baseURL.
func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]memoryObject),
	}
}

// Put stores the object and returns its public URL.
func (s *MemoryStore) Put(_ context.Context, key, contentType string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[key] = memoryObject{contentType: contentType, data: buf}
	return s.baseURL + "/" + key, nil
}

// Delete removes the object behind the URL. Unknown URLs are ignored.
func (s *MemoryStore) Delete(_ context.Context, url string) error {
	key := strings.TrimPrefix(url, s.baseURL+"/")

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// Get returns a stored object; used by tests to assert on uploads.
func (s *MemoryStore) Get(key string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[key]
	if !ok {
		return nil, "", false
	}
	return obj.data, obj.contentType, true
}

// Len reports how many objects are stored.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
