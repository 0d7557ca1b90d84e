package registry

import (
	"strings"
	"sync"
)

// MemoryStore is an in-memory Store. Keys are created implicitly for every
// ancestor of a key that is set.
type MemoryStore struct {
	mu     sync.RWMutex
	keys   map[string]struct{}
	values map[string]string
}

// NewMemoryStore returns a store populated from entries, a map of key path
// to default value. An empty value creates the key without a default value.
func NewMemoryStore(entries map[string]string) *MemoryStore {
	s := &MemoryStore{
		keys:   make(map[string]struct{}),
		values: make(map[string]string),
	}
	for path, value := range entries {
		s.Set(path, value)
	}
	return s
}

// Set creates the key at path and sets its default value.
func (s *MemoryStore) Set(path, value string) {
	path = NormalizePath(path)
	if path == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	segments := strings.Split(path, Separator)
	for i := range segments {
		s.keys[strings.Join(segments[:i+1], Separator)] = struct{}{}
	}
	if value == "" {
		delete(s.values, path)
		return
	}
	s.values[path] = value
}

// Len returns the number of keys in the store.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

// OpenKey implements Store.
func (s *MemoryStore) OpenKey(path string) (Key, error) {
	path = NormalizePath(path)
	if !s.has(path) {
		return nil, ErrNotExist
	}
	return &memoryKey{store: s, path: path}, nil
}

func (s *MemoryStore) has(path string) bool {
	if path == "" {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.keys[path]
	return ok
}

func (s *MemoryStore) value(path string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[path]
	return v, ok
}

type memoryKey struct {
	store *MemoryStore
	path  string
}

func (k *memoryKey) OpenSubKey(path string) (Key, error) {
	return k.store.OpenKey(Join(k.path, path))
}

func (k *memoryKey) DefaultValue() (string, error) {
	v, ok := k.store.value(k.path)
	if !ok {
		return "", ErrNotExist
	}
	return v, nil
}

func (k *memoryKey) Close() error {
	return nil
}
