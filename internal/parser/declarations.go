package parser

import (
	"fmt"
	"slices"
	"strings"

	"github.com/toyz/apilint/internal/annotations"
	"github.com/toyz/apilint/internal/chunker"
	apierrors "github.com/toyz/apilint/internal/errors"
	"github.com/toyz/apilint/internal/models"
)

var (
	methodModifiers = []string{"public", "protected", "static", "final", "synchronized", "deprecated", "abstract", "default"}
	fieldModifiers  = []string{"field", "enum_constant", "volatile", "transient", "public", "protected", "static", "final", "deprecated"}
)

func newPackage(raw string, origin models.Origin) (*models.Package, *apierrors.ParseError) {
	trimmed := strings.Trim(raw, " {;")
	tokens := strings.Fields(trimmed)

	i := slices.Index(tokens, "package")
	if i == -1 || i+1 >= len(tokens) {
		return nil, apierrors.NewParseError("package declaration without a name", raw)
	}

	name := tokens[i+1]
	return &models.Package{
		Origin: origin,
		Raw:    trimmed,
		Name:   name,
		Path:   strings.Split(name, "."),
	}, nil
}

func newClass(pkg *models.Package, raw string, origin models.Origin, imports models.Imports) (*models.Class, *apierrors.ParseError) {
	c := &models.Class{
		Origin:  origin,
		Package: pkg,
		Raw:     strings.Trim(raw, " {;"),
	}
	tokens := chunker.Split(c.Raw, chunker.Whitespace)
	c.Split = tokens

	var kindAt int
	switch {
	case slices.Contains(tokens, "class"):
		c.Kind, kindAt = models.KindClass, slices.Index(tokens, "class")
	case slices.Contains(tokens, "interface"):
		c.Kind, kindAt = models.KindInterface, slices.Index(tokens, "interface")
	case slices.Contains(tokens, "enum"):
		c.Kind, kindAt = models.KindEnum, slices.Index(tokens, "enum")
		c.IsEnum = true
	default:
		return nil, apierrors.NewParseError(fmt.Sprintf("Funky class type %s", c.Raw), raw)
	}
	if kindAt+1 >= len(tokens) {
		return nil, apierrors.NewParseError(fmt.Sprintf("%s declaration without a name", c.Kind), raw)
	}
	if pkg == nil {
		return nil, apierrors.NewParseError("class declared outside of a package", raw)
	}

	if i := slices.Index(tokens, "extends"); i != -1 && i+1 < len(tokens) {
		ext := models.ParseType(tokens[i+1], imports)
		c.Extends = &ext
		c.ExtendsPath = chunker.Split(ext.Name, chunker.Dot)
	}

	if i := slices.Index(tokens, "implements"); i != -1 {
		for _, tok := range tokens[i+1:] {
			if tok = strings.TrimSuffix(tok, ","); tok != "" {
				c.Implements = append(c.Implements, models.ParseType(tok, imports))
			}
		}
	}

	for _, tok := range tokens {
		if strings.HasPrefix(tok, "@") {
			c.Annotations = append(c.Annotations, newAnnotation(tok, models.ClassOwner(), origin, imports))
		}
	}

	name := tokens[kindAt+1]
	if open := strings.Index(name, "<"); open != -1 {
		c.Generics = models.ParseType(name, imports).Generics
		name = name[:open]
	}

	c.FullName = pkg.Name + "." + name
	c.Name = c.FullName[strings.LastIndex(c.FullName, ".")+1:]
	return c, nil
}

// newMethod builds a method or constructor; index is its position in the
// owning class's ctor or method list.
func newMethod(cls *models.Class, raw string, origin models.Origin, imports models.Imports, ctor bool, index int) (*models.Method, *apierrors.ParseError) {
	kind := models.OwnerMethod
	if ctor {
		kind = models.OwnerCtor
	}
	ref := models.MemberOwner(kind, index)

	m := &models.Method{
		Origin:    origin,
		ClassName: cls.FullName,
		Raw:       strings.Trim(raw, " {;"),
		IsCtor:    ctor,
	}

	for _, tok := range chunker.Split(raw, chunker.Whitespace) {
		if tok != "" && tok != ";" {
			m.Split = append(m.Split, tok)
		}
	}

	var rest []string
	for i, tok := range m.Split {
		switch {
		case i == 0 && (tok == "method" || tok == "ctor"):
		case slices.Contains(methodModifiers, tok):
		case strings.HasPrefix(tok, "@"):
			m.Annotations = append(m.Annotations, newAnnotation(tok, ref, origin, imports))
		default:
			rest = append(rest, tok)
		}
	}

	if len(rest) > 0 && strings.HasPrefix(rest[0], "<") {
		m.Generics = models.ParseType(rest[0], imports).Generics
		rest = rest[1:]
	}

	if ctor {
		m.Type = models.ParseType(cls.FullName, imports)
	} else {
		if len(rest) == 0 {
			return nil, apierrors.NewParseError("method declaration without a return type", raw)
		}
		m.Type = models.ParseType(rest[0], imports)
		rest = rest[1:]
	}

	signature := strings.Join(rest, " ")
	open := strings.Index(signature, "(")
	if open == -1 {
		return nil, apierrors.NewParseError("method declaration without a parameter list", raw)
	}
	end := closingParen(signature, open)
	if end == -1 {
		return nil, apierrors.NewParseError("unterminated parameter list", raw)
	}

	m.Name = strings.TrimSpace(signature[:open])
	if m.Name == "" {
		return nil, apierrors.NewParseError("method declaration without a name", raw)
	}

	for i, param := range chunker.Split(signature[open+1:end], chunker.Comma) {
		m.Args = append(m.Args, newArgument(param, ref.ArgOwner(i), origin, imports))
	}

	tail := strings.Fields(signature[end+1:])
	if len(tail) > 0 && tail[0] == "throws" {
		for _, t := range chunker.Split(strings.Join(tail[1:], " "), chunker.Comma) {
			m.Throws = append(m.Throws, models.ParseType(strings.TrimSuffix(t, ";"), imports))
		}
	}

	return m, nil
}

func newArgument(raw string, ref models.OwnerRef, origin models.Origin, imports models.Imports) *models.Argument {
	arg := &models.Argument{Origin: origin, Owner: ref.Member()}

	var typeTokens []string
	for _, tok := range chunker.Split(raw, chunker.Whitespace) {
		if strings.HasPrefix(tok, "@") {
			arg.Annotations = append(arg.Annotations, newAnnotation(tok, ref, origin, imports))
			continue
		}
		typeTokens = append(typeTokens, tok)
	}

	arg.Type = models.ParseType(strings.Join(typeTokens, " "), imports)
	return arg
}

func newField(cls *models.Class, raw string, origin models.Origin, imports models.Imports, index int) (*models.Field, *apierrors.ParseError) {
	ref := models.MemberOwner(models.OwnerField, index)
	f := &models.Field{
		Origin:         origin,
		ClassName:      cls.FullName,
		Raw:            strings.Trim(raw, " {;"),
		IsEnumConstant: strings.HasPrefix(strings.TrimSpace(raw), "enum_constant"),
	}
	f.Split = chunker.Split(raw, chunker.WhitespaceOrSemicolon)

	decl := f.Raw
	if before, value, found := strings.Cut(f.Raw, " = "); found {
		decl = before
		f.Value = strings.Trim(strings.TrimSpace(value), `;"`)
		f.HasValue = true
	}

	var rest []string
	for _, tok := range chunker.Split(decl, chunker.WhitespaceOrSemicolon) {
		switch {
		case tok == "" || slices.Contains(fieldModifiers, tok):
		case strings.HasPrefix(tok, "@"):
			f.Annotations = append(f.Annotations, newAnnotation(tok, ref, origin, imports))
		default:
			rest = append(rest, tok)
		}
	}

	if len(rest) < 2 {
		return nil, apierrors.NewParseError("field declaration without a type and name", raw)
	}

	f.Type = models.ParseType(rest[0], imports)
	f.Name = strings.Trim(rest[1], ";")
	return f, nil
}

func newAnnotation(token string, owner models.OwnerRef, origin models.Origin, imports models.Imports) *models.Annotation {
	syntax := annotations.Parse(token)

	a := &models.Annotation{
		Origin: origin,
		Raw:    strings.TrimPrefix(token, "@"),
		Type:   models.ParseType(syntax.Name, imports),
		Owner:  owner,
	}
	for _, arg := range syntax.Arguments {
		a.Arguments = append(a.Arguments, models.AnnotationArg{Key: arg.Key, Value: arg.Value})
	}
	return a
}

// closingParen returns the index of the ')' matching the '(' at open, or -1.
func closingParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
