package models

import "fmt"

// Location points at the declaration that produced a model entry
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Blame is the version-control attribution of a dump line
type Blame struct {
	Commit string
	Author string
}

// Origin records where a declaration came from
type Origin struct {
	Location Location
	Blame    *Blame
}

// Where returns the origin itself; it lets every declaration satisfy Element.
func (o Origin) Where() Origin {
	return o
}

// Element is any declaration a finding can point at
type Element interface {
	fmt.Stringer
	Where() Origin
}

// OwnerKind identifies which declaration list an OwnerRef indexes
type OwnerKind int

const (
	OwnerClass OwnerKind = iota
	OwnerCtor
	OwnerMethod
	OwnerField
)

func (k OwnerKind) String() string {
	switch k {
	case OwnerCtor:
		return "ctor"
	case OwnerMethod:
		return "method"
	case OwnerField:
		return "field"
	default:
		return "class"
	}
}

// OwnerRef addresses the declaration owning an annotation or argument
// within its Class. Arg is -1 unless the owner is a parameter.
type OwnerRef struct {
	Kind  OwnerKind
	Index int
	Arg   int
}

// ClassOwner refers to the class itself
func ClassOwner() OwnerRef {
	return OwnerRef{Kind: OwnerClass, Arg: -1}
}

// MemberOwner refers to the index-th member of the given kind
func MemberOwner(kind OwnerKind, index int) OwnerRef {
	return OwnerRef{Kind: kind, Index: index, Arg: -1}
}

// ArgOwner refers to a parameter of a method or constructor
func (r OwnerRef) ArgOwner(arg int) OwnerRef {
	r.Arg = arg
	return r
}

// IsArg reports whether the reference points at a parameter
func (r OwnerRef) IsArg() bool {
	return r.Arg >= 0
}

// Member returns the reference to the enclosing member, dropping the parameter
func (r OwnerRef) Member() OwnerRef {
	r.Arg = -1
	return r
}
