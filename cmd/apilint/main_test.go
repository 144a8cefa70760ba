package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/apilint/internal/report"
)

const widgetDump = `package org.example {
  public class Widget {
    ctor public Widget();
    method public void show();
  }
}
`

const fooPrev = `package java.util {
  public class Foo {
    method public int getX();
  }
}
`

type workspace struct {
	t   *testing.T
	dir string
}

// newWorkspace creates a temp dir holding an empty config file so runs
// never pick up configuration from the surrounding checkout
func newWorkspace(t *testing.T) *workspace {
	w := &workspace{t: t, dir: t.TempDir()}
	w.write(".apilint.yaml", "allow_google: false\n")
	return w
}

func (w *workspace) write(name, content string) string {
	path := filepath.Join(w.dir, name)
	require.NoError(w.t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func (w *workspace) run(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	full := append([]string{"--no-color", "--config", filepath.Join(w.dir, ".apilint.yaml")}, args...)
	code := run(full, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"version"}, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Equal(t, "apilint dev\n", stdout.String())
}

func TestLintStyleErrors(t *testing.T) {
	w := newWorkspace(t)
	current := w.write("current.txt", widgetDump)

	code, out, _ := w.run("lint", current)
	assert.Equal(t, 77, code)
	assert.Contains(t, out, "API style issues")
	assert.Contains(t, out, "Error GV3: Method missing threading annotation")
}

func TestLintSuppressesKnownFindings(t *testing.T) {
	w := newWorkspace(t)
	current := w.write("current.txt", widgetDump)
	previous := w.write("previous.txt", widgetDump)

	code, out, _ := w.run("lint", current, previous)
	assert.Equal(t, 0, code)
	assert.NotContains(t, out, "API style issues")
}

func TestLintIncompatible(t *testing.T) {
	w := newWorkspace(t)
	current := w.write("current.txt", `package java.util {
  public class Foo {
  }
}
`)
	previous := w.write("previous.txt", fooPrev)

	code, out, _ := w.run("lint", current, previous)
	assert.Equal(t, 131, code)
	assert.Contains(t, out, "API compatibility issues")
}

func TestLintNoticedAndResultJSON(t *testing.T) {
	w := newWorkspace(t)
	current := w.write("current.txt", `package java.util {
  public class Foo {
    method public int getX();
    method public int getY();
  }
}
`)
	previous := w.write("previous.txt", fooPrev)
	results := filepath.Join(w.dir, "results.json")

	code, out, _ := w.run("lint", current, previous, "--show-noticed", "--result-json", results)
	assert.Equal(t, 10, code)
	assert.Contains(t, out, "API changes noticed")
	assert.Contains(t, out, "java.util.Foo")

	f, err := os.Open(results)
	require.NoError(t, err)
	defer f.Close()
	doc, err := report.ReadDocument(f)
	require.NoError(t, err)
	assert.Len(t, doc.APIChanges, 1)
	assert.True(t, doc.Failure)
}

func TestLintFilterErrors(t *testing.T) {
	w := newWorkspace(t)
	current := w.write("current.txt", widgetDump)

	code, out, _ := w.run("lint", current, "--filter-errors", "ZZ")
	assert.Equal(t, 0, code)
	assert.NotContains(t, out, "GV3")
}

func TestLintDeprecationsAtBirth(t *testing.T) {
	w := newWorkspace(t)
	current := w.write("current.txt", `package org.example {
  public class Widget {
    ctor public Widget();
    method public void show();
    method public deprecated void hide();
  }
}
`)
	previous := w.write("previous.txt", widgetDump)

	code, out, _ := w.run("lint", current, previous, "--show-deprecations-at-birth")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Deprecated at birth")
	assert.Contains(t, out, "Found API deprecation at birth")
}

func TestLintFailures(t *testing.T) {
	w := newWorkspace(t)

	code, _, errOut := w.run("lint", filepath.Join(w.dir, "absent.txt"))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Lint Run Failed")

	current := w.write("current.txt", widgetDump)
	code, _, _ = w.run("lint", current, "--filter-errors", "not-a-rule")
	assert.Equal(t, 1, code)

	code, _, errOut = w.run("lint")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Error:")
}
