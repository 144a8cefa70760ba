package compat

import (
	"strings"

	"github.com/toyz/apilint/internal/models"
	"github.com/toyz/apilint/internal/report"
)

const deprecatedAtBirth = "Found API deprecation at birth"

func isDeprecated(raw string) bool {
	return strings.Contains(raw, " deprecated ")
}

// DeprecationsAtBirth reports classes and members that are new in cur and
// already deprecated. Neither API is modified.
func DeprecationsAtBirth(cur, prev models.API) *report.Store {
	store := report.NewStore()
	for _, name := range cur.Names() {
		c := cur[name]
		prevClass, existed := prev[name]
		if !existed && isDeprecated(c.Raw) {
			store.Error(c, nil, "", deprecatedAtBirth)
		}

		known := make(map[string]bool)
		if existed {
			for _, m := range prevClass.Ctors {
				known[m.Ident()] = true
			}
			for _, m := range prevClass.Methods {
				known[m.Ident()] = true
			}
			for _, f := range prevClass.Fields {
				known[f.Ident()] = true
			}
		}

		for _, m := range append(append([]*models.Method{}, c.Ctors...), c.Methods...) {
			if !known[m.Ident()] && isDeprecated(m.Raw) {
				store.Error(c, m, "", deprecatedAtBirth)
			}
		}
		for _, f := range c.Fields {
			if !known[f.Ident()] && isDeprecated(f.Raw) {
				store.Error(c, f, "", deprecatedAtBirth)
			}
		}
	}
	return store
}
