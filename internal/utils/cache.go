package utils

import (
	"os"
	"sync"
	"time"
)

type fileEntry[V any] struct {
	value   V
	modTime time.Time
	size    int64
}

func (e *fileEntry[V]) matches(info os.FileInfo) bool {
	return info.ModTime().Equal(e.modTime) && info.Size() == e.size
}

// FileCache holds one value derived from each file. An entry is only
// served while the file keeps the modification time and size it had
// when the entry was stored.
type FileCache[V any] struct {
	mu      sync.RWMutex
	entries map[string]*fileEntry[V]
}

// NewFileCache creates an empty cache
func NewFileCache[V any]() *FileCache[V] {
	return &FileCache[V]{entries: make(map[string]*fileEntry[V])}
}

// Get returns the value stored for path. A stale entry is dropped.
func (c *FileCache[V]) Get(path string) (V, bool) {
	var zero V

	c.mu.RLock()
	entry, ok := c.entries[path]
	c.mu.RUnlock()
	if !ok {
		return zero, false
	}

	if info, err := os.Stat(path); err == nil && entry.matches(info) {
		return entry.value, true
	}

	c.mu.Lock()
	if c.entries[path] == entry {
		delete(c.entries, path)
	}
	c.mu.Unlock()
	return zero, false
}

// Put stores value for path along with the file's current metadata
func (c *FileCache[V]) Put(path string, value V) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = &fileEntry[V]{value: value, modTime: info.ModTime(), size: info.Size()}
	return nil
}

// Forget drops the entry for path
func (c *FileCache[V]) Forget(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// Clear drops every entry
func (c *FileCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*fileEntry[V])
}

// Len is the number of entries held
func (c *FileCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
