package gateway

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var ErrCacheNotFound = errors.New("cache not found")

// Cache is one named store of snapshots.
type Cache interface {
	Match(key string) (Snapshot, bool, error)
	Put(key string, snapshot Snapshot) error
	Keys() ([]string, error)
}

// Storage holds the named caches.
type Storage interface {
	// Open returns the named cache, creating it when missing.
	Open(name string) (Cache, error)
	Has(name string) (bool, error)
	Names() ([]string, error)
	Delete(name string) (bool, error)
	// Rename moves the cache from into to, replacing any cache named to.
	Rename(from, to string) error
	// Match looks key up in every cache.
	Match(key string) (Snapshot, bool, error)
}

type MemoryStorage struct {
	mu     sync.RWMutex
	caches map[string]*memoryCache
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{caches: make(map[string]*memoryCache)}
}

func (s *MemoryStorage) Open(name string) (Cache, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cache, ok := s.caches[name]
	if !ok {
		cache = &memoryCache{entries: make(map[string]Snapshot)}
		s.caches[name] = cache
	}
	return cache, nil
}

func (s *MemoryStorage) Has(name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.caches[name]
	return ok, nil
}

func (s *MemoryStorage) Names() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.namesLocked(), nil
}

func (s *MemoryStorage) namesLocked() []string {
	names := make([]string, 0, len(s.caches))
	for name := range s.caches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *MemoryStorage) Delete(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.caches[name]
	delete(s.caches, name)
	return ok, nil
}

func (s *MemoryStorage) Rename(from, to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cache, ok := s.caches[from]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCacheNotFound, from)
	}
	delete(s.caches, from)
	s.caches[to] = cache
	return nil
}

func (s *MemoryStorage) Match(key string) (Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, name := range s.namesLocked() {
		if snapshot, ok, _ := s.caches[name].Match(key); ok {
			return snapshot, true, nil
		}
	}
	return Snapshot{}, false, nil
}

type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]Snapshot
}

func (c *memoryCache) Match(key string) (Snapshot, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snapshot, ok := c.entries[key]
	return snapshot, ok, nil
}

func (c *memoryCache) Put(key string, snapshot Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = snapshot
	return nil
}

func (c *memoryCache) Keys() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
