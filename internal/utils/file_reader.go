package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileReader reads API dumps and location maps with caching
type FileReader struct {
	contentCache *FileCache[string]
	linesCache   *FileCache[[]string]
}

// NewFileReader creates a new FileReader instance with caching
func NewFileReader() *FileReader {
	return &FileReader{
		contentCache: NewFileCache[string](),
		linesCache:   NewFileCache[[]string](),
	}
}

// Open opens a file for streaming. The caller closes the reader.
func (fr *FileReader) Open(filePath string) (io.ReadCloser, error) {
	cleanPath, err := fr.validateAndCleanPath(filePath)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filepath.Base(cleanPath), err)
	}
	return f, nil
}

// ReadFile reads a file and returns its contents as a string with caching
func (fr *FileReader) ReadFile(filePath string) (string, error) {
	cleanPath, err := fr.validateAndCleanPath(filePath)
	if err != nil {
		return "", err
	}

	if cached, exists := fr.contentCache.Get(cleanPath); exists {
		return cached, nil
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", filepath.Base(cleanPath), err)
	}

	contentStr := string(content)
	fr.contentCache.Put(cleanPath, contentStr)

	return contentStr, nil
}

// ReadLines reads a file line by line with trailing newlines removed
func (fr *FileReader) ReadLines(filePath string) ([]string, error) {
	cleanPath, err := fr.validateAndCleanPath(filePath)
	if err != nil {
		return nil, err
	}

	if cached, exists := fr.linesCache.Get(cleanPath); exists {
		return cached, nil
	}

	f, err := os.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filepath.Base(cleanPath), err)
	}
	defer f.Close()

	lines, err := ScanLines(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filepath.Base(cleanPath), err)
	}

	fr.linesCache.Put(cleanPath, lines)
	return lines, nil
}

// ScanLines splits r into lines, accepting lines longer than bufio's default limit
func ScanLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := NewLineScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

// NewLineScanner returns a line scanner sized for generated dump files
func NewLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	return scanner
}

// ClearCache clears all cached files
func (fr *FileReader) ClearCache() {
	fr.contentCache.Clear()
	fr.linesCache.Clear()
}

// InvalidateFile removes a specific file from the cache
func (fr *FileReader) InvalidateFile(filePath string) {
	cleanPath, err := fr.validateAndCleanPath(filePath)
	if err != nil {
		return
	}

	fr.contentCache.Forget(cleanPath)
	fr.linesCache.Forget(cleanPath)
}

// GetCacheStats returns statistics about the cache
func (fr *FileReader) GetCacheStats() (contentFiles, lineFiles int) {
	return fr.contentCache.Len(), fr.linesCache.Len()
}

// validateAndCleanPath validates and cleans a file path
func (fr *FileReader) validateAndCleanPath(filePath string) (string, error) {
	if err := NotEmpty("filePath")(filePath); err != nil {
		return "", fmt.Errorf("file path %w", err)
	}

	cleanPath := filepath.Clean(filePath)

	if strings.Contains(cleanPath, "..") {
		// .. is only accepted as a leading relative component
		if !strings.HasPrefix(cleanPath, "..") {
			return "", fmt.Errorf("path traversal not allowed in file path: %s", filePath)
		}
	}

	if _, err := os.Stat(cleanPath); os.IsNotExist(err) {
		return "", fmt.Errorf("file does not exist: %s", cleanPath)
	}

	return cleanPath, nil
}
