package utils

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileReaderCaching(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "api.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("package a {\n  public class A {\n  }\n}\n"), 0644))

	reader := NewFileReader()

	lines1, err := reader.ReadLines(testFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"package a {", "  public class A {", "  }", "}"}, lines1)

	content1, err := reader.ReadFile(testFile)
	require.NoError(t, err)
	content2, err := reader.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, content1, content2)

	contentFiles, lineFiles := reader.GetCacheStats()
	assert.Equal(t, 1, contentFiles)
	assert.Equal(t, 1, lineFiles)

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, os.WriteFile(testFile, []byte("package b {\n}\n"), 0644))

	lines2, err := reader.ReadLines(testFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"package b {", "}"}, lines2)

	reader.InvalidateFile(testFile)
	contentFiles, lineFiles = reader.GetCacheStats()
	assert.Equal(t, 0, contentFiles)
	assert.Equal(t, 0, lineFiles)

	_, _ = reader.ReadFile(testFile)
	reader.ClearCache()
	contentFiles, lineFiles = reader.GetCacheStats()
	assert.Equal(t, 0, contentFiles+lineFiles)
}

func TestFileReaderOpen(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "api.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("package a {\n"), 0644))

	reader := NewFileReader()
	rc, err := reader.Open(testFile)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "package a {\n", string(data))
}

func TestFileReaderRejectsBadPaths(t *testing.T) {
	reader := NewFileReader()

	_, err := reader.ReadFile("")
	assert.Error(t, err)

	_, err = reader.ReadLines(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)

	_, err = reader.Open("a/../../b")
	assert.Error(t, err)
}

func TestScanLinesAcceptsLongLines(t *testing.T) {
	long := strings.Repeat("x", 200*1024)
	lines, err := ScanLines(bytes.NewBufferString("a\n" + long + "\nb"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", long, "b"}, lines)
}

func TestDiagnosticSystemLevels(t *testing.T) {
	var out, errOut bytes.Buffer
	d := NewDiagnosticSystemWithWriters(DiagnosticWarn, &out, &errOut)
	d.SetColors(false)
	d.SetShowTime(false)

	d.Error("bad %s", "thing")
	d.Warn("careful")
	d.Info("hidden")
	d.Debug("hidden")

	assert.Equal(t, "[ERROR] bad thing\n[WARN] careful\n", errOut.String())
	assert.Empty(t, out.String())
}

func TestDiagnosticSystemSummarySorted(t *testing.T) {
	var errOut bytes.Buffer
	d := NewDiagnosticSystemWithWriters(DiagnosticInfo, io.Discard, &errOut)
	d.SetColors(false)

	d.Summary("Results", map[string]interface{}{"warnings": 2, "errors": 1})

	assert.Equal(t, "\nResults\n   errors: 1\n   warnings: 2\n", errOut.String())
}

func TestDiagnosticSystemIndent(t *testing.T) {
	var errOut bytes.Buffer
	d := NewDiagnosticSystemWithWriters(DiagnosticInfo, io.Discard, &errOut)
	d.SetColors(false)

	d.Indent()
	d.List("one")
	d.Unindent()
	d.Unindent()
	d.List("two")

	assert.Equal(t, "  - one\n- two\n", errOut.String())
}
