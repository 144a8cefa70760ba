package rules

import (
	"regexp"
	"slices"
	"strings"

	"github.com/toyz/apilint/internal/annotations"
	"github.com/toyz/apilint/internal/models"
	"github.com/toyz/apilint/internal/report"
)

// Context is handed to every check for one class
type Context struct {
	Config *Config
	Store  *report.Store
	Class  *models.Class
}

// Warn records a warning against the class being examined
func (c *Context) Warn(detail models.Element, rule, msg string) {
	c.Store.Warn(c.Class, detail, rule, msg)
}

// Error records an error against the class being examined
func (c *Context) Error(detail models.Element, rule, msg string) {
	c.Store.Error(c.Class, detail, rule, msg)
}

// In reports whether the annotation type belongs to the family
func (c *Context) In(family annotations.Family, a *models.Annotation) bool {
	return c.Config.registry().Is(family, a.Type.Name)
}

// AnyIn reports whether any of the annotations belongs to the family
func (c *Context) AnyIn(family annotations.Family, list []*models.Annotation) bool {
	for _, a := range list {
		if c.In(family, a) {
			return true
		}
	}
	return false
}

var onName = regexp.MustCompile(`^on[A-Z]`)

// hasPhrase matches a space-delimited phrase against a trimmed declaration
func hasPhrase(raw, phrase string) bool {
	return strings.Contains(" "+raw+" ", phrase)
}

func invocables(c *models.Class) []*models.Method {
	out := make([]*models.Method, 0, len(c.Ctors)+len(c.Methods))
	out = append(out, c.Ctors...)
	return append(out, c.Methods...)
}

func extendsFrom(c *models.Class, prefix string) bool {
	return c.Extends != nil && strings.HasPrefix(c.Extends.Name, prefix)
}

func implements(c *models.Class, name string) bool {
	for _, t := range c.Implements {
		if t.Name == name {
			return true
		}
	}
	return false
}

func hasSuffix(s string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

func hasPrefix(s string, prefixes ...string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func oneOf(s string, set ...string) bool {
	return slices.Contains(set, s)
}
