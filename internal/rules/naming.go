package rules

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	resourceClass = regexp.MustCompile(`^android\.R\.[a-z]+`)
	constantStart = regexp.MustCompile(`^[A-Z0-9_]`)
	acronym       = regexp.MustCompile(`[A-Z]{2,}`)

	fileResourceName   = regexp.MustCompile(`^[a-z1-9_]+$`)
	configResourceName = regexp.MustCompile(`^config_[a-z][a-zA-Z1-9]*$`)
	layoutResourceName = regexp.MustCompile(`^layout_[a-z][a-zA-Z1-9]*$`)
	stateResourceName  = regexp.MustCompile(`^state_[a-z_]*$`)
	valueResourceName  = regexp.MustCompile(`^[a-z][a-zA-Z1-9]*$`)
	styleResourceName  = regexp.MustCompile(`^[A-Z][A-Za-z1-9]+(_[A-Z][A-Za-z1-9]+?)*$`)
)

// compileTimeTypes are the field types a constant can be inlined with
var compileTimeTypes = []string{"java.lang.String", "byte", "short", "int", "long", "float", "double", "boolean", "char"}

func checkConstants(ctx *Context) {
	c := ctx.Class
	if resourceClass.MatchString(c.FullName) ||
		strings.HasPrefix(c.FullName, "android.os.Build") ||
		c.FullName == "android.system.OsConstants" {
		return
	}

	for _, f := range c.Fields {
		if !f.Has("static") || !f.Has("final") {
			continue
		}
		if !constantStart.MatchString(f.Name) {
			ctx.Error(f, "C2", "Constant field names must be FOO_NAME")
		}
		if f.Type.Name != "java.lang.String" && hasPrefix(f.Name, "MIN_", "MAX_") {
			ctx.Warn(f, "C8", "If min/max could change in future, make them dynamic methods")
		}
		if oneOf(f.Type.Name, compileTimeTypes...) && !f.HasValue {
			ctx.Error(f, "", "All constants must be defined at compile time")
		}
	}
}

func checkEnums(ctx *Context) {
	if hasPhrase(ctx.Class.Raw, "extends java.lang.Enum") {
		ctx.Error(nil, "F5", "Enums are not allowed")
	}
}

func checkClassNames(ctx *Context) {
	c := ctx.Class
	if hasPrefix(c.FullName, "android.opengl", "android.renderscript") || resourceClass.MatchString(c.FullName) {
		return
	}

	if acronym.MatchString(c.Name) {
		ctx.Warn(nil, "S1", "Class names with acronyms should be Mtp not MTP")
	}
	if c.Name != "" && !isUpper(c.Name[0]) {
		ctx.Error(nil, "S1", "Class must start with uppercase char")
	}
	if strings.HasSuffix(c.Name, "Impl") {
		ctx.Error(nil, "", "Don't expose your implementation details")
	}
}

func checkMethodNames(ctx *Context) {
	c := ctx.Class
	if hasPrefix(c.FullName, "android.opengl", "android.renderscript") || c.FullName == "android.system.OsConstants" {
		return
	}

	for _, m := range c.Methods {
		if acronym.MatchString(m.Name) {
			ctx.Warn(m, "S1", "Method names with acronyms should be getMtu() instead of getMTU()")
		}
		if m.Name != "" && !isLower(m.Name[0]) {
			ctx.Error(m, "S1", "Method name must start with lowercase char")
		}
	}
}

// checkResourceNames verifies the case conventions of android.R members
func checkResourceNames(ctx *Context) {
	c := ctx.Class
	if !resourceClass.MatchString(c.FullName) {
		return
	}

	switch {
	case oneOf(c.Name, "anim", "animator", "color", "dimen", "drawable", "interpolator", "layout",
		"transition", "menu", "mipmap", "string", "plurals", "raw", "xml"):
		for _, f := range c.Fields {
			if !fileResourceName.MatchString(f.Name) {
				ctx.Error(f, "", "Expected resource name in this class to be foo_bar_baz style")
			}
		}
	case oneOf(c.Name, "array", "attr", "id", "bool", "fraction", "integer"):
		for _, f := range c.Fields {
			if configResourceName.MatchString(f.Name) ||
				layoutResourceName.MatchString(f.Name) ||
				stateResourceName.MatchString(f.Name) ||
				valueResourceName.MatchString(f.Name) {
				continue
			}
			ctx.Error(f, "C7", "Expected resource name in this class to be fooBarBaz style")
		}
	case c.Name == "style":
		for _, f := range c.Fields {
			if !styleResourceName.MatchString(f.Name) {
				ctx.Error(f, "C7", "Expected resource name in this class to be FooBar_Baz style")
			}
		}
	}
}

// Hard keywords of Kotlin that are legal Java identifiers
var kotlinKeywords = []string{"as", "fun", "in", "is", "object", "typealias", "val", "var", "when"}

func checkKotlinKeyword(ctx *Context) {
	for _, m := range ctx.Class.Methods {
		if oneOf(m.Name, kotlinKeywords...) {
			ctx.Error(m, "", "Method name must not be a Kotlin keyword")
		}
	}
	for _, f := range ctx.Class.Fields {
		if oneOf(f.Name, kotlinKeywords...) {
			ctx.Error(f, "", "Field name must not be a Kotlin keyword")
		}
	}
}

func checkTense(ctx *Context) {
	if strings.HasPrefix(ctx.Class.FullName, "android.opengl") {
		return
	}
	for _, m := range ctx.Class.Methods {
		if strings.HasSuffix(m.Name, "Enable") {
			ctx.Warn(m, "", "Unexpected tense; probably meant 'enabled'")
		}
	}
}

func checkParams(ctx *Context) {
	c := ctx.Class
	if strings.HasSuffix(c.Name, "Params") {
		return
	}
	if oneOf(c.FullName, "android.app.ActivityOptions", "android.app.BroadcastOptions",
		"android.os.Bundle", "android.os.BaseBundle", "android.os.PersistableBundle") {
		return
	}

	for _, bad := range []string{"Param", "Parameter", "Parameters", "Args", "Arg", "Argument", "Arguments", "Options", "Bundle"} {
		if strings.HasSuffix(c.Name, bad) {
			ctx.Error(nil, "", "Classes holding a set of parameters should be called 'FooParams'")
		}
	}
}

// unitSuffixes maps discouraged unit suffixes to their replacement
var unitSuffixes = []struct{ suffix, want string }{
	{"Ns", "Nanos"},
	{"Ms", "Millis or Micros"},
	{"Sec", "Seconds"},
	{"Secs", "Seconds"},
	{"Hr", "Hours"},
	{"Hrs", "Hours"},
	{"Mo", "Months"},
	{"Mos", "Months"},
	{"Yr", "Years"},
	{"Yrs", "Years"},
	{"Byte", "Bytes"},
	{"Space", "Bytes"},
}

func checkUnits(ctx *Context) {
	for _, m := range ctx.Class.Methods {
		if !oneOf(m.Type.Name, "short", "int", "long") {
			continue
		}
		for _, u := range unitSuffixes {
			if strings.HasSuffix(m.Name, u.suffix) {
				ctx.Error(m, "", "Expected method name units to be "+u.want)
			}
		}
		if hasSuffix(m.Name, "Nanos", "Micros") {
			ctx.Warn(m, "", "Returned time values are strongly encouraged to be in milliseconds unless you need the extra precision")
		}
		if strings.HasSuffix(m.Name, "Seconds") {
			ctx.Error(m, "", "Returned time values must be in milliseconds")
		}
	}

	for _, m := range ctx.Class.Methods {
		typ := m.Type
		if typ.IsVoid() {
			if len(m.Args) != 1 {
				continue
			}
			typ = m.Args[0].Type
		}
		if strings.HasSuffix(m.Name, "Fraction") && typ.Name != "float" {
			ctx.Error(m, "", "Fractions must use floats")
		}
		if strings.HasSuffix(m.Name, "Percentage") && typ.Name != "int" {
			ctx.Error(m, "", "Percentage must use ints")
		}
	}
}

// checkFlags looks for FLAG_ constants of one scope sharing bits
func checkFlags(ctx *Context) {
	known := make(map[string]int64)
	for _, f := range ctx.Class.Fields {
		scope, _, found := strings.Cut(f.Name, "FLAG_")
		if !found {
			continue
		}
		val, err := strconv.ParseInt(strings.TrimSpace(f.Value), 10, 64)
		if err != nil {
			continue
		}
		if val&known[scope] != 0 {
			ctx.Warn(f, "C1", "Found overlapping flag constant value")
		}
		known[scope] |= val
	}
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
func isLower(b byte) bool { return b >= 'a' && b <= 'z' }
