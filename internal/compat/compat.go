// Package compat compares two versions of an API surface
package compat

import (
	"github.com/toyz/apilint/internal/models"
	"github.com/toyz/apilint/internal/report"
	"github.com/toyz/apilint/internal/rules"
)

const (
	classRemoved      = "Class removed or incompatible change"
	annotationRemoved = "Annotation removed or incompatible change"
	ctorRemoved       = "Constructor removed or incompatible change"
	methodRemoved     = "Method removed or incompatible change"
	fieldRemoved      = "Field removed or incompatible change"
)

// Checker finds backward-incompatible changes between a previous and a
// current API
type Checker struct {
	cfg   *rules.Config
	store *report.Store
}

// NewChecker creates a checker. Declarations scheduled for removal in the
// configured library version may disappear without a finding.
func NewChecker(cfg *rules.Config) *Checker {
	if cfg == nil {
		d := rules.DefaultConfig()
		cfg = &d
	}
	return &Checker{cfg: cfg}
}

// Check returns the compatibility failures of cur against prev. Failures
// are recorded against the previous class.
func (c *Checker) Check(cur, prev models.API) *report.Store {
	c.store = report.NewStore()
	for _, name := range prev.Names() {
		prevClass := prev[name]
		curClass, ok := cur[name]
		if !ok {
			if !c.cfg.RemovalDue(prevClass) {
				c.store.Error(prevClass, nil, "", classRemoved)
			}
			continue
		}
		c.checkAnnotations(prevClass, prevClass.Annotations, curClass.Annotations)
		c.checkCtors(prevClass, curClass)
		c.checkMethods(prev, cur, prevClass, curClass)
		c.checkFields(prevClass, curClass)
	}
	return c.store
}

// Check is a shorthand for NewChecker(cfg).Check(cur, prev)
func Check(cur, prev models.API, cfg *rules.Config) *report.Store {
	return NewChecker(cfg).Check(cur, prev)
}

func (c *Checker) checkAnnotations(owner *models.Class, prev, cur []*models.Annotation) {
	for _, a := range prev {
		if findAnnotation(cur, a.Ident()) == nil {
			c.store.Error(owner, a, "", annotationRemoved)
		}
	}
}

func (c *Checker) checkCtors(prevClass, curClass *models.Class) {
	for _, ctor := range prevClass.Ctors {
		match := findMethod(curClass.Ctors, ctor.Ident())
		if match == nil {
			if c.cfg.RemovalDue(ctor) {
				continue
			}
			c.store.Error(prevClass, ctor, "", ctorRemoved)
			return
		}
		c.checkAnnotations(prevClass, ctor.Annotations, match.Annotations)
	}
}

func (c *Checker) checkMethods(prev, cur models.API, prevClass, curClass *models.Class) {
	available := allMethods(cur, curClass)
	for _, m := range allMethods(prev, prevClass) {
		match := findMethod(available, m.Ident())
		if match == nil {
			if c.cfg.RemovalDue(m) {
				continue
			}
			c.store.Error(prevClass, m, "", methodRemoved)
			return
		}
		c.checkAnnotations(prevClass, m.Annotations, match.Annotations)
	}
}

func (c *Checker) checkFields(prevClass, curClass *models.Class) {
	idents := make(map[string]bool, len(curClass.Fields))
	for _, f := range curClass.Fields {
		idents[f.Ident()] = true
	}
	for _, f := range prevClass.Fields {
		if idents[f.Ident()] {
			continue
		}
		if c.cfg.RemovalDue(f) {
			continue
		}
		c.store.Error(prevClass, f, "", fieldRemoved)
		return
	}
}

// allMethods returns the methods of c followed by those inherited through
// its extends chain within api
func allMethods(api models.API, c *models.Class) []*models.Method {
	var methods []*models.Method
	seen := make(map[string]bool)
	for c != nil && !seen[c.FullName] {
		seen[c.FullName] = true
		methods = append(methods, c.Methods...)
		if c.Extends == nil {
			break
		}
		c = api[c.Extends.Name]
	}
	return methods
}

func findMethod(list []*models.Method, ident string) *models.Method {
	for _, m := range list {
		if m.Ident() == ident {
			return m
		}
	}
	return nil
}

func findAnnotation(list []*models.Annotation, ident string) *models.Annotation {
	for _, a := range list {
		if a.Ident() == ident {
			return a
		}
	}
	return nil
}
