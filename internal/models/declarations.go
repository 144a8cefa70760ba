package models

import (
	"fmt"
	"hash/fnv"
	"slices"
	"sort"
	"strings"
)

// AnnotationArg is a single key=value argument of an annotation usage
type AnnotationArg struct {
	Key   string
	Value string
}

// Annotation is an annotation usage attached to a declaration
type Annotation struct {
	Origin
	Raw       string          // text without the leading '@'
	Type      Type            // resolved annotation type
	Arguments []AnnotationArg // literal arguments in declaration order
	Owner     OwnerRef        // declaration carrying the annotation
}

// Arg returns the value of a named argument
func (a *Annotation) Arg(key string) (string, bool) {
	for _, arg := range a.Arguments {
		if arg.Key == key {
			return arg.Value, true
		}
	}
	return "", false
}

// Ident identifies the annotation across API versions
func (a *Annotation) Ident() string {
	if len(a.Arguments) == 0 {
		return a.Type.Name
	}
	args := make([]string, len(a.Arguments))
	for i, arg := range a.Arguments {
		args[i] = arg.Key + "=" + arg.Value
	}
	return a.Type.Name + "(" + strings.Join(args, ",") + ")"
}

func (a *Annotation) String() string {
	return a.Raw
}

// Argument is a method or constructor parameter
type Argument struct {
	Origin
	Type        Type
	Annotations []*Annotation
	Owner       OwnerRef // enclosing method or constructor
}

func (a *Argument) String() string {
	parts := make([]string, 0, len(a.Annotations)+1)
	for _, an := range a.Annotations {
		parts = append(parts, "@"+an.Raw)
	}
	parts = append(parts, a.Type.Ident())
	return strings.TrimSpace(strings.Join(parts, " "))
}

// AnnotationList returns the parameter's annotations
func (a *Argument) AnnotationList() []*Annotation { return a.Annotations }

// Field covers both fields and enum constants
type Field struct {
	Origin
	ClassName      string
	Raw            string
	Split          []string // every token of the declaration, modifiers included
	Type           Type
	Name           string
	Value          string
	HasValue       bool
	Annotations    []*Annotation
	IsEnumConstant bool
}

// Has reports whether the declaration carries the given token (e.g. "static")
func (f *Field) Has(token string) bool {
	return slices.Contains(f.Split, token)
}

// Ident identifies the field across API versions
func (f *Field) Ident() string {
	value := "null"
	if f.HasValue {
		value = f.Value
	}
	return fmt.Sprintf("field %s %s = %s;", f.Type.Ident(), f.Name, value)
}

func (f *Field) String() string { return f.Raw }

// AnnotationList returns the field's annotations
func (f *Field) AnnotationList() []*Annotation { return f.Annotations }

// Method covers both methods and constructors
type Method struct {
	Origin
	ClassName   string
	Raw         string
	Split       []string
	IsCtor      bool
	Type        Type // return type; the owning class for constructors
	Name        string
	Args        []*Argument
	Throws      []Type
	Generics    []Type
	Annotations []*Annotation
}

// Has reports whether the declaration carries the given token
func (m *Method) Has(token string) bool {
	return slices.Contains(m.Split, token)
}

// Ident identifies the method across API versions
func (m *Method) Ident() string {
	args := make([]string, len(m.Args))
	for i, a := range m.Args {
		args[i] = a.Type.Ident()
	}
	return fmt.Sprintf("method %s %s(%s);", m.Type.Ident(), m.Name, strings.Join(args, ", "))
}

func (m *Method) String() string { return m.Raw }

// AnnotationList returns the method's annotations
func (m *Method) AnnotationList() []*Annotation { return m.Annotations }

// Annotated is implemented by declarations that carry annotations
type Annotated interface {
	Element
	AnnotationList() []*Annotation
}

// Package is a "package x.y.z {" declaration
type Package struct {
	Origin
	Raw  string
	Name string
	Path []string
}

func (p *Package) String() string { return p.Raw }

// Kind is the declaration keyword of a class
type Kind string

const (
	KindClass     Kind = "class"
	KindInterface Kind = "interface"
	KindEnum      Kind = "enum"
)

// Class is a class, interface or enum together with its members
type Class struct {
	Origin
	Package     *Package
	Raw         string
	Split       []string
	Kind        Kind
	FullName    string
	Name        string
	Extends     *Type
	ExtendsPath []string
	Implements  []Type
	Annotations []*Annotation
	Generics    []Type
	Ctors       []*Method
	Methods     []*Method
	Fields      []*Field
	IsEnum      bool
}

// Has reports whether the class header carries the given token
func (c *Class) Has(token string) bool {
	return slices.Contains(c.Split, token)
}

func (c *Class) String() string { return c.Raw }

// AnnotationList returns the class annotations
func (c *Class) AnnotationList() []*Annotation { return c.Annotations }

// PackageName returns the owning package name, or "" for classes without one
func (c *Class) PackageName() string {
	if c.Package == nil {
		return ""
	}
	return c.Package.Name
}

// Hash is the structural identity used to decide whether a class changed
// between two API versions.
func (c *Class) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(c.Raw))
	for _, list := range [][]Element{methodElements(c.Ctors), fieldElements(c.Fields), methodElements(c.Methods)} {
		h.Write([]byte{0})
		for _, e := range list {
			h.Write([]byte(e.String()))
			h.Write([]byte{1})
		}
	}
	return h.Sum64()
}

// Resolve returns the declaration an OwnerRef points at, or nil
func (c *Class) Resolve(ref OwnerRef) Element {
	var member *Method
	switch ref.Kind {
	case OwnerClass:
		return c
	case OwnerField:
		if ref.Index < len(c.Fields) {
			return c.Fields[ref.Index]
		}
		return nil
	case OwnerCtor:
		if ref.Index < len(c.Ctors) {
			member = c.Ctors[ref.Index]
		}
	case OwnerMethod:
		if ref.Index < len(c.Methods) {
			member = c.Methods[ref.Index]
		}
	}
	if member == nil {
		return nil
	}
	if ref.IsArg() {
		if ref.Arg < len(member.Args) {
			return member.Args[ref.Arg]
		}
		return nil
	}
	return member
}

// Members returns constructors, methods and fields in declaration-list order
func (c *Class) Members() []Element {
	members := make([]Element, 0, len(c.Ctors)+len(c.Methods)+len(c.Fields))
	members = append(members, methodElements(c.Ctors)...)
	members = append(members, methodElements(c.Methods)...)
	members = append(members, fieldElements(c.Fields)...)
	return members
}

func methodElements(ms []*Method) []Element {
	out := make([]Element, len(ms))
	for i, m := range ms {
		out[i] = m
	}
	return out
}

func fieldElements(fs []*Field) []Element {
	out := make([]Element, len(fs))
	for i, f := range fs {
		out[i] = f
	}
	return out
}

// API maps fully-qualified class names to classes
type API map[string]*Class

// Names returns the class names in sorted order
func (a API) Names() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
