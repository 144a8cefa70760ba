package rules

import (
	"strings"

	apierrors "github.com/toyz/apilint/internal/errors"
	"github.com/toyz/apilint/internal/models"
	"github.com/toyz/apilint/internal/parser"
	"github.com/toyz/apilint/internal/report"
	"github.com/toyz/apilint/internal/utils"
)

// Engine runs the rule set against classes
type Engine struct {
	cfg         Config
	rules       []Rule
	diagnostics *utils.DiagnosticSystem
}

// Option configures an Engine
type Option func(*engineOptions)

type engineOptions struct {
	registry    *Registry
	diagnostics *utils.DiagnosticSystem
}

// WithRegistry replaces the builtin rules
func WithRegistry(r *Registry) Option {
	return func(o *engineOptions) { o.registry = r }
}

// WithDiagnostics routes engine logging to d
func WithDiagnostics(d *utils.DiagnosticSystem) Option {
	return func(o *engineOptions) { o.diagnostics = d }
}

// NewEngine creates an engine. Every disabled rule must name a registered rule.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	o := engineOptions{diagnostics: utils.NewSilentDiagnostics()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = BuiltinRegistry()
	}

	for _, name := range cfg.DisabledRules {
		if !o.registry.Has(name) {
			return nil, apierrors.NewValidationError("disabled_rules", name, "must name a registered rule").
				WithSuggestion("known rules: " + strings.Join(o.registry.List(), ", "))
		}
	}

	return &Engine{
		cfg:         cfg,
		rules:       o.registry.Rules(cfg.DisabledRules...),
		diagnostics: o.diagnostics,
	}, nil
}

// Config returns the engine configuration
func (e *Engine) Config() *Config {
	return &e.cfg
}

// Ignored reports whether the class lives in an ignored package
func (e *Engine) Ignored(c *models.Class) bool {
	return hasPrefix(c.PackageName(), e.cfg.IgnoredPackages...)
}

// ExamineClass records the class as noticed and, unless its package is
// ignored, runs every rule against it
func (e *Engine) ExamineClass(store *report.Store, noticed report.Noticed, c *models.Class) {
	noticed.Notice(c)

	if e.Ignored(c) {
		e.diagnostics.Debug("skipping %s (ignored package)", c.FullName)
		return
	}

	ctx := &Context{Config: &e.cfg, Store: store, Class: c}
	before := store.Len()
	for _, rule := range e.rules {
		rule.Check(ctx)
	}
	e.diagnostics.Debug("examined %s: %d findings", c.FullName, store.Len()-before)
}

// ExamineAPI examines every class in name order
func (e *Engine) ExamineAPI(api models.API) (*report.Store, report.Noticed) {
	store := report.NewStore()
	noticed := make(report.Noticed, len(api))
	for _, name := range api.Names() {
		e.ExamineClass(store, noticed, api[name])
	}
	return store, noticed
}

// Examiner returns a parser callback that examines each class as soon as
// it has been read
func (e *Engine) Examiner(store *report.Store, noticed report.Noticed) parser.ClassFunc {
	return func(c *models.Class) {
		e.ExamineClass(store, noticed, c)
	}
}
