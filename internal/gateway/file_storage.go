package gateway

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

const snapshotExt = ".json"

// FileStorage keeps one directory per cache and one JSON file per snapshot under rootDir.
type FileStorage struct {
	rootDir string
	mu      sync.RWMutex
}

func NewFileStorage(rootDir string) *FileStorage {
	return &FileStorage{rootDir: rootDir}
}

func (s *FileStorage) cacheDir(name string) string {
	return filepath.Join(s.rootDir, name)
}

func (s *FileStorage) Open(name string) (Cache, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dir := s.cacheDir(name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
	}
	return &fileCache{storage: s, dir: dir}, nil
}

func (s *FileStorage) Has(name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	info, err := os.Stat(s.cacheDir(name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("os.Stat > %w", err)
	}
	return info.IsDir(), nil
}

func (s *FileStorage) Names() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.namesLocked()
}

func (s *FileStorage) namesLocked() ([]string, error) {
	entries, err := os.ReadDir(s.rootDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadDir(%s) > %w", s.rootDir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *FileStorage) Delete(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dir := s.cacheDir(name)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return false, nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return false, fmt.Errorf("os.RemoveAll(%s) > %w", dir, err)
	}
	return true, nil
}

func (s *FileStorage) Rename(from, to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fromDir, toDir := s.cacheDir(from), s.cacheDir(to)
	if _, err := os.Stat(fromDir); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrCacheNotFound, from)
	}
	if err := os.RemoveAll(toDir); err != nil {
		return fmt.Errorf("os.RemoveAll(%s) > %w", toDir, err)
	}
	if err := os.Rename(fromDir, toDir); err != nil {
		return fmt.Errorf("os.Rename(%s) > %w", fromDir, err)
	}
	return nil
}

func (s *FileStorage) Match(key string) (Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names, err := s.namesLocked()
	if err != nil {
		return Snapshot{}, false, err
	}
	for _, name := range names {
		cache := &fileCache{storage: s, dir: s.cacheDir(name)}
		snapshot, ok, err := cache.read(key)
		if err != nil {
			return Snapshot{}, false, err
		}
		if ok {
			return snapshot, true, nil
		}
	}
	return Snapshot{}, false, nil
}

type fileCache struct {
	storage *FileStorage
	dir     string
}

func (c *fileCache) filePath(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+snapshotExt)
}

func (c *fileCache) Match(key string) (Snapshot, bool, error) {
	c.storage.mu.RLock()
	defer c.storage.mu.RUnlock()
	return c.read(key)
}

func (c *fileCache) Put(key string, snapshot Snapshot) error {
	c.storage.mu.Lock()
	defer c.storage.mu.Unlock()

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll > %w", err)
	}
	contents, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("json.Marshal > %w", err)
	}

	localFilePath := c.filePath(key)
	tmp := localFilePath + ".tmp"
	if err := os.WriteFile(tmp, contents, 0o644); err != nil {
		return fmt.Errorf("os.WriteFile > %w", err)
	}
	if err := os.Rename(tmp, localFilePath); err != nil {
		return fmt.Errorf("os.Rename > %w", err)
	}
	return nil
}

func (c *fileCache) Keys() ([]string, error) {
	c.storage.mu.RLock()
	defer c.storage.mu.RUnlock()

	entries, err := os.ReadDir(c.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadDir > %w", err)
	}

	var keys []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), snapshotExt) {
			continue
		}
		snapshot, err := c.readFile(filepath.Join(c.dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		keys = append(keys, snapshot.Method+" "+snapshot.URL)
	}
	sort.Strings(keys)
	return keys, nil
}

// read returns false when no snapshot is stored for key.
func (c *fileCache) read(key string) (Snapshot, bool, error) {
	localFilePath := c.filePath(key)
	if _, err := os.Stat(localFilePath); os.IsNotExist(err) {
		return Snapshot{}, false, nil
	}
	snapshot, err := c.readFile(localFilePath)
	if err != nil {
		return Snapshot{}, false, err
	}
	return snapshot, true, nil
}

func (c *fileCache) readFile(path string) (Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("os.Open > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	contents, err := io.ReadAll(file)
	if err != nil {
		return Snapshot{}, fmt.Errorf("io.ReadAll > %w", err)
	}
	var snapshot Snapshot
	if err := json.Unmarshal(contents, &snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("json.Unmarshal(%s) > %w", path, err)
	}
	return snapshot, nil
}
