package models

import (
	"strings"

	"github.com/toyz/apilint/internal/chunker"
)

var primitiveTypes = map[string]bool{
	"boolean": true,
	"byte":    true,
	"char":    true,
	"short":   true,
	"int":     true,
	"long":    true,
	"float":   true,
	"double":  true,
}

// IsPrimitive reports whether name is a Java primitive type
func IsPrimitive(name string) bool {
	return primitiveTypes[name]
}

// Imports maps a simple class name to its fully-qualified name
type Imports map[string]string

// Add records an import such as "androidx.annotation.NonNull"
func (im Imports) Add(path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		return
	}
	im[path[strings.LastIndex(path, ".")+1:]] = path
}

// Type is a recursively parsed type expression
type Type struct {
	Name     string // resolved name without generics or array suffix
	Generics []Type // generic arguments, in order
	Extends  []Type // bounds from "T extends A & B", in order
	IsArray  bool
	IsVarArg bool
}

// ParseType parses a type expression such as "Map<K extends Foo & Bar, V>[]".
// Generic arguments are sliced from the first '<' to the last '>'.
func ParseType(raw string, imports Imports) Type {
	var t Type

	parts := chunker.Split(raw, chunker.Extends)
	if len(parts) == 0 {
		return t
	}
	if len(parts) > 1 {
		for _, bound := range chunker.Split(parts[1], chunker.Ampersand) {
			t.Extends = append(t.Extends, ParseType(bound, imports))
		}
	}

	base := parts[0]
	if open := strings.Index(base, "<"); open >= 0 {
		inner := ""
		if end := strings.LastIndex(base, ">"); end > open {
			inner = base[open+1 : end]
		}
		for _, g := range chunker.Split(inner, chunker.Comma) {
			t.Generics = append(t.Generics, ParseType(g, imports))
		}
		base = base[:open]
	}

	switch {
	case strings.HasSuffix(base, "[]"):
		for strings.HasSuffix(base, "[]") {
			base = base[:len(base)-2]
		}
		t.IsArray = true
	case strings.HasSuffix(base, "..."):
		base = base[:len(base)-3]
		t.IsVarArg = true
	}

	t.Name = resolve(base, imports)
	return t
}

// resolve rewrites the leading dotted segment through the import map.
func resolve(name string, imports Imports) string {
	if IsPrimitive(name) {
		return name
	}
	head, tail, dotted := strings.Cut(name, ".")
	full, ok := imports[head]
	if !ok {
		return name
	}
	if dotted {
		return full + "." + tail
	}
	return full
}

// Ident returns the normalized identity of the type, excluding array markers
func (t Type) Ident() string {
	var b strings.Builder
	b.WriteString(t.Name)
	if len(t.Generics) > 0 {
		b.WriteString("<")
		for i, g := range t.Generics {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(g.Ident())
		}
		b.WriteString(">")
	}
	if len(t.Extends) > 0 {
		b.WriteString(" extends ")
		for i, e := range t.Extends {
			if i > 0 {
				b.WriteString(" & ")
			}
			b.WriteString(e.Ident())
		}
	}
	return b.String()
}

func (t Type) String() string {
	return t.Ident()
}

// IsVoid reports whether the type is the void return type
func (t Type) IsVoid() bool {
	return t.Name == "void"
}

// Walk calls fn for the type and every generic argument and bound beneath it
func (t Type) Walk(fn func(Type)) {
	for _, g := range t.Generics {
		g.Walk(fn)
	}
	for _, e := range t.Extends {
		e.Walk(fn)
	}
	fn(t)
}
