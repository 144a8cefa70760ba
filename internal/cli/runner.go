package cli

import (
	"context"
	"errors"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/toyz/apilint/internal/compat"
	"github.com/toyz/apilint/internal/config"
	apierrors "github.com/toyz/apilint/internal/errors"
	"github.com/toyz/apilint/internal/models"
	"github.com/toyz/apilint/internal/parser"
	"github.com/toyz/apilint/internal/report"
	"github.com/toyz/apilint/internal/rules"
	"github.com/toyz/apilint/internal/utils"
)

// Dump is one API dump, read from Path or given inline as Content
type Dump struct {
	Name    string // file name used in finding locations
	Path    string
	Content string
}

// FileDump refers to a dump on disk
func FileDump(path string) *Dump {
	return &Dump{Name: path, Path: path}
}

// StringDump wraps an in-memory dump
func StringDump(name, content string) *Dump {
	return &Dump{Name: name, Content: content}
}

// Request describes one lint run
type Request struct {
	Current  *Dump
	Previous *Dump // optional
	APIMap   parser.APIMap
}

// Result holds everything a lint run found
type Result struct {
	Style   *report.Store
	Compat  *report.Store
	Changed report.Noticed
	Removed report.Noticed
	Diffs   []compat.MemberDiff
	Status  report.Status

	// ParseErrors holds the declarations that could not be parsed; each
	// one dropped its class from the run
	ParseErrors error

	summary RunSummary
}

// Summary returns the counts of the run
func (r *Result) Summary() RunSummary {
	return r.summary
}

// RunSummary contains information about a finished run
type RunSummary struct {
	ClassesExamined int
	PreviousClasses int
	StyleFindings   int
	StyleErrors     int
	CompatFindings  int
	ParseErrors     int
	Changed         int
	Removed         int
	Status          report.Status
}

// Runner coordinates parsing, rule evaluation, compatibility checking and
// noticed-change detection. A Runner holds no per-run state.
type Runner struct {
	cfg         *config.Config
	engine      *rules.Engine
	diagnostics *utils.DiagnosticSystem
}

// NewRunner creates a runner for the given configuration
func NewRunner(cfg *config.Config, diagnostics *utils.DiagnosticSystem) (*Runner, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if diagnostics == nil {
		diagnostics = utils.NewSilentDiagnostics()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ruleCfg, err := cfg.Rules()
	if err != nil {
		return nil, err
	}
	engine, err := rules.NewEngine(ruleCfg, rules.WithDiagnostics(diagnostics))
	if err != nil {
		return nil, err
	}

	return &Runner{cfg: cfg, engine: engine, diagnostics: diagnostics}, nil
}

// Config returns the configuration of the runner
func (r *Runner) Config() *config.Config {
	return r.cfg
}

// examined is the outcome of parsing and examining one dump
type examined struct {
	api       models.API
	store     *report.Store
	noticed   report.Noticed
	parseErrs error
}

func (r *Runner) examine(ctx context.Context, dump *Dump, apiMap parser.APIMap) (*examined, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := &examined{store: report.NewStore(), noticed: report.Noticed{}}
	opts := []parser.Option{
		parser.WithDiagnostics(r.diagnostics),
		parser.WithClassCallback(r.engine.Examiner(out.store, out.noticed)),
	}
	if dump.Name != "" {
		opts = append(opts, parser.WithFileName(dump.Name))
	}
	if apiMap != nil {
		opts = append(opts, parser.WithAPIMap(apiMap))
	}
	p := parser.NewParser(opts...)

	var err error
	if dump.Path != "" {
		out.api, err = p.ParseFile(dump.Path)
	} else {
		out.api, err = p.ParseString(dump.Content)
	}

	var parseErrs *apierrors.MultipleErrors
	switch {
	case err == nil:
	case errors.As(err, &parseErrs) && out.api != nil:
		out.parseErrs = err
		r.diagnostics.Warn("%s: %d declarations could not be parsed", dump.Name, parseErrs.Count())
	default:
		return nil, err
	}

	r.diagnostics.Verbose("examined %d classes from %s", len(out.api), dump.Name)
	return out, nil
}

// examineBoth builds the current and previous results concurrently. Each
// side has its own accumulators.
func (r *Runner) examineBoth(ctx context.Context, req Request) (cur, prev *examined, err error) {
	if req.Current == nil {
		return nil, nil, apierrors.NewValidationError("current", nil, "an API dump is required")
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cur, err = r.examine(ctx, req.Current, req.APIMap)
		return err
	})
	if req.Previous != nil {
		g.Go(func() error {
			var err error
			prev, err = r.examine(ctx, req.Previous, req.APIMap)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return cur, prev, nil
}

// Run lints the current dump. With a previous dump, findings already
// present in it are suppressed, compatibility is checked and changed
// classes are detected.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	cur, prev, err := r.examineBoth(ctx, req)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Style:       cur.store,
		Compat:      report.NewStore(),
		Changed:     report.Noticed{},
		Removed:     report.Noticed{},
		ParseErrors: cur.parseErrs,
	}

	if prev != nil {
		res.Style.Subtract(prev.store)
		res.Changed, res.Removed = compat.Changes(cur.noticed, prev.noticed)
		ruleCfg := r.engine.Config()
		res.Compat = compat.Check(cur.api, prev.api, ruleCfg)
		res.Diffs = compat.DiffChanged(res.Changed, prev.noticed)
		res.ParseErrors = errors.Join(cur.parseErrs, prev.parseErrs)
	} else {
		// without a previous dump every class is new
		res.Changed, res.Removed = compat.Changes(cur.noticed, report.Noticed{})
	}

	if len(r.cfg.AllowedPackages) > 0 {
		rules.NewPackageChecker(r.cfg.AllowedPackages).Check(res.Style, cur.api)
	}
	if len(r.cfg.FilterErrors) > 0 {
		res.Style.Filter(r.cfg.FilterErrors)
	}

	noticed := r.cfg.Output.ShowNoticed && len(res.Changed)+len(res.Removed) > 0
	res.Status = report.Evaluate(res.Style, res.Compat, noticed)

	res.summary = RunSummary{
		ClassesExamined: len(cur.api),
		StyleFindings:   res.Style.Len(),
		CompatFindings:  res.Compat.Len(),
		ParseErrors:     countErrors(res.ParseErrors),
		Changed:         len(res.Changed),
		Removed:         len(res.Removed),
		Status:          res.Status,
	}
	for _, f := range res.Style.Sorted() {
		if f.Error {
			res.summary.StyleErrors++
		}
	}
	if prev != nil {
		res.summary.PreviousClasses = len(prev.api)
	}

	r.diagnostics.Debug("run finished with status %s", res.Status)
	return res, nil
}

// DeprecationsAtBirth reports declarations of the current dump that are
// new and already deprecated
func (r *Runner) DeprecationsAtBirth(ctx context.Context, req Request) (*report.Store, error) {
	if req.Previous == nil {
		return nil, apierrors.NewValidationError("previous", nil, "an API dump is required").
			WithSuggestion("deprecations at birth compare against a previous API dump")
	}
	cur, prev, err := r.examineBoth(ctx, req)
	if err != nil {
		return nil, err
	}
	return compat.DeprecationsAtBirth(cur.api, prev.api), nil
}

// Document converts the result to its JSON form. Changed and removed
// classes are included only when noticed changes are shown.
func (r *Runner) Document(res *Result) *report.Document {
	doc := report.NewDocument()
	changed, removed := report.Noticed{}, report.Noticed{}
	if r.cfg.Output.ShowNoticed {
		changed, removed = res.Changed, res.Removed
	}
	doc.Append(res.Style, res.Compat, changed, removed)
	return doc
}

// Print renders the section that decides the status: compatibility
// failures, otherwise style findings, otherwise noticed changes
func (r *Runner) Print(w io.Writer, res *Result, useColor bool) {
	p := report.NewPrinter(w, useColor)
	switch {
	case res.Compat.Len() != 0:
		p.Failures("API compatibility issues", res.Compat)
	case res.Style.Len() != 0:
		p.Failures("API style issues", res.Style)
	case res.Status == report.StatusNoticed:
		p.Noticed(res.Changed, res.Removed)
	}
}

func countErrors(err error) int {
	switch e := err.(type) {
	case nil:
		return 0
	case *apierrors.MultipleErrors:
		return e.Count()
	case interface{ Unwrap() []error }:
		count := 0
		for _, inner := range e.Unwrap() {
			count += countErrors(inner)
		}
		return count
	default:
		return 1
	}
}
