package rules

import (
	"fmt"
	"strings"

	"github.com/toyz/apilint/internal/models"
	"github.com/toyz/apilint/internal/report"
)

// PackageChecker restricts the types an API may mention to a set of
// allowed packages
type PackageChecker struct {
	allowed []string
	message string
}

// NewPackageChecker creates a checker for the given package names
func NewPackageChecker(allowed []string) *PackageChecker {
	return &PackageChecker{
		allowed: allowed,
		message: strings.Join(allowed, ".*, ") + ".*",
	}
}

func (p *PackageChecker) isAllowed(name string, typeParams []string) bool {
	if name == "?" || name == "void" || models.IsPrimitive(name) {
		return true
	}
	for _, list := range [][]string{p.allowed, typeParams} {
		for _, pkg := range list {
			if name == pkg || strings.HasPrefix(name, pkg+".") {
				return true
			}
		}
	}
	return false
}

func (p *PackageChecker) fail(store *report.Store, c *models.Class, detail models.Element, name string) {
	store.Error(c, detail, "GV7", fmt.Sprintf("Class %s is not allowed. Allowed packages: %s.", name, p.message))
}

func (p *PackageChecker) checkType(store *report.Store, c *models.Class, detail models.Element, t models.Type, typeParams []string) {
	t.Walk(func(node models.Type) {
		if !p.isAllowed(node.Name, typeParams) {
			p.fail(store, c, detail, node.Ident())
		}
	})
}

func (p *PackageChecker) checkAnnotations(store *report.Store, c *models.Class, list []*models.Annotation) {
	for _, a := range list {
		p.checkType(store, c, a, a.Type, nil)
	}
}

func (p *PackageChecker) checkMethod(store *report.Store, c *models.Class, m *models.Method, typeParams []string) {
	p.checkType(store, c, m, m.Type, typeParams)
	p.checkAnnotations(store, c, m.Annotations)
	for _, a := range m.Args {
		p.checkType(store, c, a, a.Type, typeParams)
		p.checkAnnotations(store, c, a.Annotations)
	}
}

// Check records a GV7 error for every disallowed type in the API. Type
// parameters of a class, and of a method within it, are always allowed.
func (p *PackageChecker) Check(store *report.Store, api models.API) {
	for _, name := range api.Names() {
		c := api[name]
		typeParams := typeParamNames(c.Generics)

		if !p.isAllowed(c.FullName, typeParams) {
			p.fail(store, c, nil, c.FullName)
		}
		if c.Extends != nil {
			p.checkType(store, c, nil, *c.Extends, typeParams)
		}
		for _, t := range c.Implements {
			p.checkType(store, c, nil, t, typeParams)
		}
		for _, t := range c.Generics {
			p.checkType(store, c, nil, t, typeParams)
		}
		p.checkAnnotations(store, c, c.Annotations)
		for _, f := range c.Fields {
			p.checkType(store, c, f, f.Type, typeParams)
			p.checkAnnotations(store, c, f.Annotations)
		}
		for _, m := range c.Methods {
			p.checkMethod(store, c, m, append(typeParamNames(m.Generics), typeParams...))
		}
		for _, ctor := range c.Ctors {
			p.checkMethod(store, c, ctor, typeParams)
		}
	}
}

func typeParamNames(generics []models.Type) []string {
	names := make([]string, len(generics))
	for i, g := range generics {
		names[i] = g.Name
	}
	return names
}
