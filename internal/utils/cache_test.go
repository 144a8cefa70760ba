package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDump(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestFileCache_ServesUnchangedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.txt")
	writeDump(t, path, "package a {\n")

	cache := NewFileCache[string]()
	require.NoError(t, cache.Put(path, "package a {\n"))

	value, ok := cache.Get(path)
	assert.True(t, ok)
	assert.Equal(t, "package a {\n", value)
	assert.Equal(t, 1, cache.Len())
}

func TestFileCache_DropsStaleEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.txt")
	writeDump(t, path, "package a {\n")

	cache := NewFileCache[string]()
	require.NoError(t, cache.Put(path, "package a {\n"))

	time.Sleep(10 * time.Millisecond)
	writeDump(t, path, "package b {\n  }\n")

	_, ok := cache.Get(path)
	assert.False(t, ok, "entry should be invalidated after the file changed")
	assert.Equal(t, 0, cache.Len())
}

func TestFileCache_MissingFile(t *testing.T) {
	cache := NewFileCache[int]()

	_, ok := cache.Get("/nonexistent/api.txt")
	assert.False(t, ok)
	assert.Error(t, cache.Put("/nonexistent/api.txt", 1))
}

func TestFileCache_ForgetAndClear(t *testing.T) {
	dir := t.TempDir()
	cache := NewFileCache[int]()
	for i := 0; i < 3; i++ {
		path := filepath.Join(dir, fmt.Sprintf("api%d.txt", i))
		writeDump(t, path, "x")
		require.NoError(t, cache.Put(path, i))
	}

	cache.Forget(filepath.Join(dir, "api0.txt"))
	assert.Equal(t, 2, cache.Len())

	cache.Clear()
	assert.Equal(t, 0, cache.Len())
}

func TestFileCache_ConcurrentAccess(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 5)
	for i := range paths {
		paths[i] = filepath.Join(dir, fmt.Sprintf("api%d.txt", i))
		writeDump(t, paths[i], "x")
	}

	cache := NewFileCache[int]()
	var wg sync.WaitGroup
	for i, path := range paths {
		i, path := i, path // per-iteration copies (go directive < 1.22)
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = cache.Put(path, i*100+j)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				cache.Get(path)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, len(paths), cache.Len())
}
