package cli

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	apierrors "github.com/toyz/apilint/internal/errors"
	"github.com/toyz/apilint/internal/report"
)

func newTestReporter(verbose bool) (*DiagnosticReporter, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewDiagnosticReporterWithWriters(verbose, &out, &errOut), &out, &errOut
}

func TestDiagnosticReporter_ReportWarning(t *testing.T) {
	reporter, _, errOut := newTestReporter(false)

	reporter.ReportWarning("This is a test warning")
	reporter.ReportWarning("This is another warning", "First suggestion")

	output := errOut.String()
	assert.Contains(t, output, "! This is a test warning")
	assert.Contains(t, output, "! This is another warning")
	assert.NotContains(t, output, "First suggestion")
}

func TestDiagnosticReporter_ReportLintError(t *testing.T) {
	reporter, _, errOut := newTestReporter(false)

	err := apierrors.NewParseError("Funky class type public widget Broken", "  public widget Broken {").
		WithClass("org.example.Broken").
		WithLocation(apierrors.SourceLocation{File: "api.txt", Line: 42})
	err.WithSuggestion("declare the class as class, interface or enum")

	reporter.ReportError(err)

	output := errOut.String()
	for _, expected := range []string{
		"ERROR: Lint Run Failed",
		"Type: Parse Error",
		"Message: api.txt:42: Funky class type public widget Broken",
		"Location: api.txt:42",
		"Context:",
		"Class: org.example.Broken",
		"Suggestions:",
		"1. declare the class as class, interface or enum",
		"API Dump Format:",
	} {
		assert.Contains(t, output, expected)
	}
}

func TestDiagnosticReporter_ReportMultipleErrors(t *testing.T) {
	reporter, _, errOut := newTestReporter(false)

	errs := apierrors.NewMultipleErrors()
	errs.Add(apierrors.NewValidationError("library_version", 0, "must be greater than zero"))
	errs.Add(apierrors.WrapFileSystemError("read", "api.txt", fmt.Errorf("no such file or directory")))

	reporter.ReportError(errs)

	output := errOut.String()
	assert.Contains(t, output, "Type: Validation Error")
	assert.Contains(t, output, "Type: File System Error")
	assert.Contains(t, output, "File: api.txt")
	assert.Contains(t, output, "Configuration Keys:")
}

func TestDiagnosticReporter_ReportBasicError(t *testing.T) {
	reporter, _, errOut := newTestReporter(true)

	reporter.ReportError(fmt.Errorf("open current.txt: no such file or directory"))

	output := errOut.String()
	assert.Contains(t, output, "Message: open current.txt: no such file or directory")
	assert.Contains(t, output, "This appears to be a file access issue")
}

func TestDiagnosticReporter_ReportParseErrors(t *testing.T) {
	reporter, _, errOut := newTestReporter(false)

	errs := apierrors.NewMultipleErrors()
	errs.Add(apierrors.NewParseError("Funky class type", "  public widget A {"))
	errs.Add(apierrors.NewParseError("member declared outside of a class", "    method public void b();"))

	reporter.ReportParseErrors("api.txt", errs)

	output := errOut.String()
	assert.Contains(t, output, "! api.txt: Funky class type")
	assert.Contains(t, output, "! api.txt: member declared outside of a class")
}

func TestDiagnosticReporter_ReportSummary(t *testing.T) {
	reporter, out, _ := newTestReporter(false)

	reporter.ReportSummary(RunSummary{
		ClassesExamined: 12,
		PreviousClasses: 11,
		StyleFindings:   3,
		StyleErrors:     2,
		CompatFindings:  1,
		Changed:         2,
		Removed:         1,
		Status:          report.StatusIncompatible,
	})

	output := out.String()
	for _, expected := range []string{
		"Classes examined: 12",
		"Previous classes: 11",
		"Style findings: 3 (2 errors)",
		"Compatibility failures: 1",
		"Classes changed: 2, removed: 1",
		"Status: incompatible",
	} {
		assert.Contains(t, output, expected)
	}
	assert.NotContains(t, output, "Parse errors")
}

func TestDiagnosticReporter_FormatContextKey(t *testing.T) {
	reporter := NewDiagnosticReporter(false)

	tests := []struct {
		input    string
		expected string
	}{
		{"path", "File"},
		{"config_type", "Config"},
		{"line", "Dump Line"},
		{"operation", "Operation"},
		{"another_test_key", "Another Test Key"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, reporter.formatContextKey(tt.input))
		})
	}
}
