package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	apierrors "github.com/toyz/apilint/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting and diagnostics
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
	errOut  io.Writer
}

// NewDiagnosticReporter creates a reporter writing to stdout and stderr
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return NewDiagnosticReporterWithWriters(verbose, os.Stdout, os.Stderr)
}

// NewDiagnosticReporterWithWriters creates a reporter with custom writers
func NewDiagnosticReporterWithWriters(verbose bool, out, errOut io.Writer) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     out,
		errOut:  errOut,
	}
}

// ReportWarning prints a one-line warning
func (r *DiagnosticReporter) ReportWarning(message string, suggestions ...string) {
	orange := color.New(color.FgYellow, color.Bold)
	orange.Fprint(r.errOut, "! ")
	fmt.Fprintf(r.errOut, "%s\n", message)
	if r.verbose {
		for _, s := range suggestions {
			fmt.Fprintf(r.errOut, "  - %s\n", s)
		}
	}
}

// ReportParseErrors warns about every declaration that could not be parsed.
// Parse errors drop one class each and never stop a run.
func (r *DiagnosticReporter) ReportParseErrors(dump string, err error) {
	var multi *apierrors.MultipleErrors
	if !errors.As(err, &multi) {
		r.ReportWarning(fmt.Sprintf("%s: %v", dump, err))
		return
	}
	for _, e := range multi.Errors {
		r.ReportWarning(fmt.Sprintf("%s: %v", dump, e), e.Suggestions()...)
	}
}

// ReportError provides comprehensive error reporting with user-friendly output
func (r *DiagnosticReporter) ReportError(err error) {
	fmt.Fprintf(r.errOut, "\nERROR: Lint Run Failed\n")
	fmt.Fprintf(r.errOut, "======================\n\n")

	var multi *apierrors.MultipleErrors
	var lintErr apierrors.LintError
	switch {
	case errors.As(err, &multi):
		for _, e := range multi.Errors {
			r.reportLintError(e)
		}
	case errors.As(err, &lintErr):
		r.reportLintError(lintErr)
	default:
		r.reportBasicError(err)
	}

	fmt.Fprintf(r.errOut, "\n")
}

// reportLintError reports an error with its location, context and suggestions
func (r *DiagnosticReporter) reportLintError(err apierrors.LintError) {
	r.printErrorHeader(err.ErrorCode())

	fmt.Fprintf(r.errOut, "Message: %s\n\n", err.Error())

	if loc := err.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.errOut, "Location: %s\n\n", loc)
	}

	if ctx := err.Context(); len(ctx) > 0 {
		r.printContext(ctx)
	}

	if suggestions := err.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}

	r.printAdditionalHelp(err.ErrorCode())

	if r.verbose {
		r.printErrorChain(err)
	}
}

// reportBasicError reports a basic error without rich context
func (r *DiagnosticReporter) reportBasicError(err error) {
	fmt.Fprintf(r.errOut, "Message: %s\n\n", err.Error())

	errorMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errorMsg, "yaml") || strings.Contains(errorMsg, "config"):
		fmt.Fprintf(r.errOut, "This appears to be a configuration issue.\n")
		fmt.Fprintf(r.errOut, "Common solutions:\n")
		fmt.Fprintf(r.errOut, "  - Check the syntax of .apilint.yaml\n")
		fmt.Fprintf(r.errOut, "  - Pass --config to point at the intended file\n\n")
	case strings.Contains(errorMsg, "no such file") || strings.Contains(errorMsg, "permission"):
		fmt.Fprintf(r.errOut, "This appears to be a file access issue.\n")
		fmt.Fprintf(r.errOut, "Common solutions:\n")
		fmt.Fprintf(r.errOut, "  - Check that the API dump paths are correct\n")
		fmt.Fprintf(r.errOut, "  - Ensure you have read permissions for the files\n\n")
	}
}

func (r *DiagnosticReporter) printErrorHeader(code apierrors.ErrorCode) {
	var errorTypeStr string
	switch code {
	case apierrors.ParseErrorCode:
		errorTypeStr = "Parse Error"
	case apierrors.ValidationErrorCode:
		errorTypeStr = "Validation Error"
	case apierrors.ConfigurationErrorCode:
		errorTypeStr = "Configuration Error"
	case apierrors.FileSystemErrorCode:
		errorTypeStr = "File System Error"
	case apierrors.ReportErrorCode:
		errorTypeStr = "Report Error"
	default:
		errorTypeStr = "Unknown Error"
	}

	fmt.Fprintf(r.errOut, "Type: %s\n", errorTypeStr)
	fmt.Fprintf(r.errOut, "%s\n\n", strings.Repeat("-", len(errorTypeStr)+6))
}

// printContext prints context information in a readable format
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(r.errOut, "Context:\n")

	importantKeys := []string{"path", "operation", "field", "class", "line"}
	printed := make(map[string]bool)
	for _, key := range importantKeys {
		if value, exists := context[key]; exists {
			fmt.Fprintf(r.errOut, "   %s: %v\n", r.formatContextKey(key), value)
			printed[key] = true
		}
	}

	rest := make([]string, 0, len(context))
	for key := range context {
		if !printed[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		fmt.Fprintf(r.errOut, "   %s: %v\n", r.formatContextKey(key), context[key])
	}

	fmt.Fprintf(r.errOut, "\n")
}

// formatContextKey formats context keys to be more readable
func (r *DiagnosticReporter) formatContextKey(key string) string {
	switch key {
	case "path":
		return "File"
	case "config_type":
		return "Config"
	case "line":
		return "Dump Line"
	default:
		parts := strings.Split(key, "_")
		for i, part := range parts {
			if len(part) > 0 {
				parts[i] = strings.ToUpper(part[:1]) + part[1:]
			}
		}
		return strings.Join(parts, " ")
	}
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.errOut, "Suggestions:\n")
	for i, suggestion := range suggestions {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(r.errOut, "   %d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.errOut, "      %s\n", line)
			}
		}
	}
	fmt.Fprintf(r.errOut, "\n")
}

// printAdditionalHelp prints additional help based on error type
func (r *DiagnosticReporter) printAdditionalHelp(code apierrors.ErrorCode) {
	switch code {
	case apierrors.ParseErrorCode:
		fmt.Fprintf(r.errOut, "API Dump Format:\n")
		fmt.Fprintf(r.errOut, "  - One declaration per line: package, class, ctor, method, field\n")
		fmt.Fprintf(r.errOut, "  - Class headers need class, interface or enum followed by a name\n")
		fmt.Fprintf(r.errOut, "  - Classes must appear inside a package block\n\n")

	case apierrors.ValidationErrorCode, apierrors.ConfigurationErrorCode:
		fmt.Fprintf(r.errOut, "Configuration Keys:\n")
		fmt.Fprintf(r.errOut, "  - Package prefixes and annotation types are dotted Java names\n")
		fmt.Fprintf(r.errOut, "  - library_version must be a positive integer\n")
		fmt.Fprintf(r.errOut, "  - annotations families: nullability, threading, enum_def, deprecated\n\n")
	}

	fmt.Fprintf(r.errOut, "For more help:\n")
	fmt.Fprintf(r.errOut, "  - Run with --verbose for more detailed output\n")
	fmt.Fprintf(r.errOut, "  - Run 'apilint lint --help' for the available flags\n")
}

// printErrorChain prints the wrapped causes in verbose mode
func (r *DiagnosticReporter) printErrorChain(err error) {
	fmt.Fprintf(r.errOut, "Verbose Debug Information:\n")
	fmt.Fprintf(r.errOut, "  Error Chain:\n")
	level := 1
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		fmt.Fprintf(r.errOut, "    %d. %s\n", level, cause.Error())
		level++
	}
	fmt.Fprintf(r.errOut, "\n")
}

// Debug prints debug information when verbose mode is enabled
func (r *DiagnosticReporter) Debug(format string, args ...interface{}) {
	if r.verbose {
		fmt.Fprintf(r.errOut, "[DEBUG] "+format+"\n", args...)
	}
}

// ReportSummary prints the counts of a finished run
func (r *DiagnosticReporter) ReportSummary(summary RunSummary) {
	fmt.Fprintf(r.out, "Lint summary\n")
	fmt.Fprintf(r.out, "============\n")
	fmt.Fprintf(r.out, "Classes examined: %d\n", summary.ClassesExamined)
	if summary.PreviousClasses > 0 {
		fmt.Fprintf(r.out, "Previous classes: %d\n", summary.PreviousClasses)
	}
	fmt.Fprintf(r.out, "Style findings: %d (%d errors)\n", summary.StyleFindings, summary.StyleErrors)
	if summary.CompatFindings > 0 {
		fmt.Fprintf(r.out, "Compatibility failures: %d\n", summary.CompatFindings)
	}
	if summary.ParseErrors > 0 {
		fmt.Fprintf(r.out, "Parse errors: %d\n", summary.ParseErrors)
	}
	if summary.Changed+summary.Removed > 0 {
		fmt.Fprintf(r.out, "Classes changed: %d, removed: %d\n", summary.Changed, summary.Removed)
	}
	fmt.Fprintf(r.out, "Status: %s\n", summary.Status)
}
