package report

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"sort"

	apierrors "github.com/toyz/apilint/internal/errors"
)

// Entry is the JSON form of a finding
type Entry struct {
	Rule   string `json:"rule"`
	Msg    string `json:"msg"`
	Error  bool   `json:"error"`
	Detail string `json:"detail"`
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Class  string `json:"class"`
	Pkg    string `json:"pkg"`
}

// LocationEntry is the JSON form of a changed or removed class
type LocationEntry struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// Document is the JSON result of one or more runs
type Document struct {
	Failures       []Entry         `json:"failures"`
	CompatFailures []Entry         `json:"compat_failures"`
	APIChanges     []LocationEntry `json:"api_changes"`
	APIRemoved     []LocationEntry `json:"api_removed"`
	Failure        bool            `json:"failure"`
}

// NewDocument creates an empty document
func NewDocument() *Document {
	return &Document{
		Failures:       []Entry{},
		CompatFailures: []Entry{},
		APIChanges:     []LocationEntry{},
		APIRemoved:     []LocationEntry{},
	}
}

// Entry converts the finding to its JSON form
func (f *Failure) Entry() Entry {
	return Entry{
		Rule:   f.Rule,
		Msg:    f.Message,
		Error:  f.Error,
		Detail: describe(f.Detail),
		File:   f.Location.File,
		Line:   f.Location.Line,
		Column: f.Location.Column,
		Class:  f.Class.String(),
		Pkg:    f.PackageText(),
	}
}

// Append adds the results of a run. Failures stay ordered by rule, and the
// failure flag is recomputed over the whole document.
func (d *Document) Append(style, compat *Store, changed, removed Noticed) {
	for _, f := range compat.Sorted() {
		d.CompatFailures = append(d.CompatFailures, f.Entry())
	}
	for _, name := range changed.Names() {
		d.APIChanges = append(d.APIChanges, locationEntry(changed, name))
	}
	for _, name := range removed.Names() {
		d.APIRemoved = append(d.APIRemoved, locationEntry(removed, name))
	}
	for _, f := range style.Sorted() {
		d.Failures = append(d.Failures, f.Entry())
	}

	d.finish()
}

// finish orders failures by rule and recomputes the failure flag
func (d *Document) finish() {
	sort.SliceStable(d.Failures, func(i, j int) bool {
		return d.Failures[i].Rule < d.Failures[j].Rule
	})

	d.Failure = len(d.CompatFailures) != 0 || len(d.APIChanges) != 0 || len(d.APIRemoved) != 0
	for _, e := range d.Failures {
		d.Failure = d.Failure || e.Error
	}
}

func locationEntry(n Noticed, name string) LocationEntry {
	loc := n[name].Location
	return LocationEntry{File: loc.File, Line: loc.Line, Column: loc.Column}
}

// ReadDocument decodes a document. Empty input yields an empty document.
func ReadDocument(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc := NewDocument()
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, err
	}
	doc.normalize()
	return doc, nil
}

// Write encodes the document
func (d *Document) Write(w io.Writer) error {
	return json.NewEncoder(w).Encode(d)
}

// WriteFile writes the document to path. With merge set, the document is
// first appended to whatever the file already holds.
func WriteFile(path string, run *Document, merge bool) error {
	doc := NewDocument()
	if merge {
		existing, err := readFileIfExists(path)
		if err != nil {
			return apierrors.WrapReportError("read", path, err)
		}
		doc = existing
	}

	doc.Failures = append(doc.Failures, run.Failures...)
	doc.CompatFailures = append(doc.CompatFailures, run.CompatFailures...)
	doc.APIChanges = append(doc.APIChanges, run.APIChanges...)
	doc.APIRemoved = append(doc.APIRemoved, run.APIRemoved...)
	doc.finish()

	f, err := os.Create(path)
	if err != nil {
		return apierrors.WrapReportError("create", path, err)
	}
	defer f.Close()

	if err := doc.Write(f); err != nil {
		return apierrors.WrapReportError("write", path, err)
	}
	return nil
}

func readFileIfExists(path string) (*Document, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return NewDocument(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadDocument(f)
}

func (d *Document) normalize() {
	if d.Failures == nil {
		d.Failures = []Entry{}
	}
	if d.CompatFailures == nil {
		d.CompatFailures = []Entry{}
	}
	if d.APIChanges == nil {
		d.APIChanges = []LocationEntry{}
	}
	if d.APIRemoved == nil {
		d.APIRemoved = []LocationEntry{}
	}
}
