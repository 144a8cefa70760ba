package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/apilint/internal/models"
	"github.com/toyz/apilint/internal/parser"
)

const dump = `package org.example {
  public class Widget {
    method public void show(@NonNull String);
    method public deprecated void hide();
    field public int count;
  }
}
`

func widget(t *testing.T) *models.Class {
	t.Helper()
	api, err := parser.NewParser(parser.WithFileName("api.txt")).ParseString(dump)
	require.NoError(t, err)
	return api["org.example.Widget"]
}

func TestFailureSignatureAndLocation(t *testing.T) {
	c := widget(t)

	f := NewFailure(c, c.Methods[0], true, "M3", "bad")
	assert.Equal(t, "org.example.Widget-method public void show(@NonNull String)-bad", f.Signature)
	assert.Equal(t, 3, f.Location.Line)
	assert.Equal(t, "Error M3", f.Head())

	classLevel := NewFailure(c, nil, false, "", "class bad")
	assert.Equal(t, "org.example.Widget--class bad", classLevel.Signature)
	assert.Equal(t, 2, classLevel.Location.Line)
	assert.Equal(t, "Warning", classLevel.Head())
}

func TestSignatureIgnoresDeprecation(t *testing.T) {
	c := widget(t)
	hide := c.Methods[1]

	plain := *hide
	plain.Raw = strings.Replace(hide.Raw, " deprecated ", " ", 1)

	assert.Equal(t, Signature(c, &plain, "x"), Signature(c, hide, "x"))
}

func TestFailureChain(t *testing.T) {
	c := widget(t)
	annotation := c.Methods[0].Args[0].Annotations[0]

	f := NewFailure(c, annotation, true, "GV5", "x")
	chain := f.Chain()
	require.Len(t, chain, 3)
	assert.Same(t, annotation, chain[0])
	assert.Same(t, c.Methods[0].Args[0], chain[1])
	assert.Same(t, c.Methods[0], chain[2])
}

func TestStoreDedupAndSubtract(t *testing.T) {
	c := widget(t)

	s := NewStore()
	s.Warn(c, c.Fields[0], "F1", "one")
	s.Warn(c, c.Fields[0], "F1", "one")
	s.Error(c, c.Methods[0], "M3", "two")
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.HasErrors())

	prev := NewStore()
	prev.Error(c, c.Methods[0], "M3", "two")
	s.Subtract(prev)
	assert.Equal(t, 1, s.Len())
	assert.False(t, s.HasErrors())
}

func TestStoreFilter(t *testing.T) {
	c := widget(t)

	s := NewStore()
	s.Error(c, nil, "GV4", "a")
	s.Error(c, nil, "GV12", "b")
	s.Error(c, nil, "M3", "c")
	s.Error(c, nil, "", "d")

	s.Filter([]string{"GV"})

	var rules []string
	for _, f := range s.Sorted() {
		rules = append(rules, f.Rule)
	}
	assert.ElementsMatch(t, []string{"GV4", "GV12"}, rules)
}

func TestDocumentAppend(t *testing.T) {
	c := widget(t)

	style := NewStore()
	style.Warn(c, nil, "S1", "w")
	style.Warn(c, nil, "", "no rule")
	style.Warn(c, nil, "C2", "w2")

	doc := NewDocument()
	doc.Append(style, NewStore(), nil, nil)

	require.Len(t, doc.Failures, 3)
	assert.Equal(t, "", doc.Failures[0].Rule)
	assert.Equal(t, "C2", doc.Failures[1].Rule)
	assert.Equal(t, "S1", doc.Failures[2].Rule)
	assert.False(t, doc.Failure, "warnings alone do not fail")

	compat := NewStore()
	compat.Error(c, nil, "", "Class removed or incompatible change")
	doc.Append(NewStore(), compat, Noticed{c.FullName: c}, nil)
	assert.True(t, doc.Failure)
	assert.Len(t, doc.CompatFailures, 1)
	assert.Equal(t, []LocationEntry{{File: "api.txt", Line: 2}}, doc.APIChanges)
}

func TestDocumentJSONShape(t *testing.T) {
	c := widget(t)
	style := NewStore()
	style.Error(c, c.Fields[0], "F1", "msg")

	doc := NewDocument()
	doc.Append(style, NewStore(), nil, nil)

	var buf bytes.Buffer
	require.NoError(t, doc.Write(&buf))

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.Equal(t, true, raw["failure"])
	assert.Equal(t, []interface{}{}, raw["api_removed"])

	entry := raw["failures"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{
		"rule":   "F1",
		"msg":    "msg",
		"error":  true,
		"detail": "field public int count",
		"file":   "api.txt",
		"line":   float64(5),
		"column": float64(0),
		"class":  "public class Widget",
		"pkg":    "package org.example",
	}, entry)
}

func TestWriteFileMerges(t *testing.T) {
	c := widget(t)
	path := filepath.Join(t.TempDir(), "result.json")

	first := NewStore()
	first.Warn(c, nil, "S1", "first")
	run1 := NewDocument()
	run1.Append(first, NewStore(), nil, nil)
	require.NoError(t, WriteFile(path, run1, true))

	second := NewStore()
	second.Error(c, nil, "C2", "second")
	run2 := NewDocument()
	run2.Append(second, NewStore(), nil, nil)
	require.NoError(t, WriteFile(path, run2, true))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	merged, err := ReadDocument(f)
	require.NoError(t, err)

	require.Len(t, merged.Failures, 2)
	assert.Equal(t, "C2", merged.Failures[0].Rule)
	assert.True(t, merged.Failure)

	require.NoError(t, WriteFile(path, run1, false))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "second")
}

func TestReadDocumentEmpty(t *testing.T) {
	doc, err := ReadDocument(strings.NewReader("  \n"))
	require.NoError(t, err)
	assert.Empty(t, doc.Failures)
	assert.NotNil(t, doc.CompatFailures)
}

func TestPrinterFailure(t *testing.T) {
	dump := "package a {\n" +
		"  public class A {\n" +
		"abcdef12 (<dev@example.com> 2020)     method public void run();\n" +
		"  }\n}\n"
	api, err := parser.NewParser().ParseString(dump)
	require.NoError(t, err)
	c := api["a.A"]

	var buf bytes.Buffer
	p := NewPrinter(&buf, false)
	p.Failure(NewFailure(c, c.Methods[0], true, "GV3", "Method missing threading annotation."))

	assert.Equal(t, "Error GV3: Method missing threading annotation.\n"+
		"    in method public void run()\n"+
		"    in public class A\n"+
		"    in package a\n"+
		"    at line api.txt:3:0\n"+
		"    last modified by dev@example.com in abcdef12\n\n", buf.String())
}

func TestPrinterNoticed(t *testing.T) {
	c := widget(t)
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	p.Noticed(Noticed{c.FullName: c}, Noticed{"org.example.Gone": c})

	assert.Equal(t, " API changes noticed \n\norg.example.Widget\norg.example.Gone removed API\n\n", buf.String())
}

func TestStatus(t *testing.T) {
	c := widget(t)
	warnings := NewStore()
	warnings.Warn(c, nil, "S1", "w")
	errs := NewStore()
	errs.Error(c, nil, "S1", "e")

	assert.Equal(t, StatusNone, Evaluate(NewStore(), NewStore(), false))
	assert.Equal(t, StatusNoticed, Evaluate(NewStore(), NewStore(), true))
	assert.Equal(t, StatusWarnings, Evaluate(warnings, NewStore(), true))
	assert.Equal(t, StatusErrors, Evaluate(errs, NewStore(), false))
	assert.Equal(t, StatusIncompatible, Evaluate(errs, errs, false))

	assert.Equal(t, 0, StatusWarnings.ExitCode())
	assert.Equal(t, 77, StatusErrors.ExitCode())
	assert.Equal(t, 131, StatusIncompatible.ExitCode())
	assert.Equal(t, 10, StatusNoticed.ExitCode())

	text, err := StatusIncompatible.MarshalText()
	require.NoError(t, err)
	var s Status
	require.NoError(t, s.UnmarshalText(text))
	assert.Equal(t, StatusIncompatible, s)
}
