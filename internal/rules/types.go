package rules

import (
	"fmt"

	"github.com/toyz/apilint/internal/models"
)

var concreteCollections = []string{
	"java.util.Vector",
	"java.util.LinkedList",
	"java.util.ArrayList",
	"java.util.Stack",
	"java.util.HashMap",
	"java.util.HashSet",
	"android.util.ArraySet",
	"android.util.ArrayMap",
}

func checkCollections(ctx *Context) {
	if ctx.Class.FullName == "android.os.Bundle" {
		return
	}
	for _, m := range ctx.Class.Methods {
		if oneOf(m.Type.Name, concreteCollections...) {
			ctx.Error(m, "CL2", "Return type is concrete collection; must be higher-level interface")
		}
		for _, a := range m.Args {
			if oneOf(a.Type.Name, concreteCollections...) {
				ctx.Error(m, "CL2", "Argument is concrete collection; must be higher-level interface")
			}
		}
	}
}

func checkBitSet(ctx *Context) {
	const bitset = "java.util.BitSet"
	for _, f := range ctx.Class.Fields {
		if f.Type.Name == bitset {
			ctx.Error(f, "", "Field type must not be heavy BitSet")
		}
	}
	for _, m := range ctx.Class.Methods {
		if m.Type.Name == bitset {
			ctx.Error(m, "", "Return type must not be heavy BitSet")
		}
		for _, a := range m.Args {
			if a.Type.Name == bitset {
				ctx.Error(m, "", "Argument type must not be heavy BitSet")
			}
		}
	}
}

var boxedTypes = []string{
	"java.lang.Number",
	"java.lang.Byte",
	"java.lang.Double",
	"java.lang.Float",
	"java.lang.Integer",
	"java.lang.Long",
	"java.lang.Short",
}

func isBoxed(t models.Type) bool {
	return oneOf(t.Name, boxedTypes...)
}

func checkBoxed(ctx *Context) {
	const msg = "Must avoid boxed primitives"
	c := ctx.Class
	for _, ctor := range c.Ctors {
		for _, a := range ctor.Args {
			if isBoxed(a.Type) {
				ctx.Error(ctor, "M11", msg)
			}
		}
	}
	for _, f := range c.Fields {
		if isBoxed(f.Type) {
			ctx.Error(f, "M11", msg)
		}
	}
	for _, m := range c.Methods {
		if isBoxed(m.Type) {
			ctx.Error(m, "M11", msg)
		}
		for _, a := range m.Args {
			if isBoxed(a.Type) {
				ctx.Error(m, "M11", msg)
			}
		}
	}
}

// arraySafeTypes may be exposed as raw arrays
var arraySafeTypes = compileTimeTypes

func checkCollectionsOverArrays(ctx *Context) {
	for _, m := range ctx.Class.Methods {
		if m.Type.IsArray && !oneOf(m.Type.Name, arraySafeTypes...) {
			ctx.Warn(m, "", "Method should return Collection<> (or subclass) instead of raw array")
		}
		for _, a := range m.Args {
			if a.Type.IsArray && !oneOf(a.Type.Name, arraySafeTypes...) {
				ctx.Warn(m, "", "Method argument should be Collection<> (or subclass) instead of raw array")
			}
		}
	}
}

var icuReplacements = map[string]string{
	"java.util.TimeZone":             "android.icu.util.TimeZone",
	"java.util.Calendar":             "android.icu.util.Calendar",
	"java.util.Locale":               "android.icu.util.ULocale",
	"java.util.ResourceBundle":       "android.icu.util.UResourceBundle",
	"java.util.SimpleTimeZone":       "android.icu.util.SimpleTimeZone",
	"java.util.StringTokenizer":      "android.icu.util.StringTokenizer",
	"java.util.GregorianCalendar":    "android.icu.util.GregorianCalendar",
	"java.lang.Character":            "android.icu.lang.UCharacter",
	"java.text.BreakIterator":        "android.icu.text.BreakIterator",
	"java.text.Collator":             "android.icu.text.Collator",
	"java.text.DecimalFormatSymbols": "android.icu.text.DecimalFormatSymbols",
	"java.text.NumberFormat":         "android.icu.text.NumberFormat",
	"java.text.DateFormatSymbols":    "android.icu.text.DateFormatSymbols",
	"java.text.DateFormat":           "android.icu.text.DateFormat",
	"java.text.SimpleDateFormat":     "android.icu.text.SimpleDateFormat",
	"java.text.MessageFormat":        "android.icu.text.MessageFormat",
	"java.text.DecimalFormat":        "android.icu.text.DecimalFormat",
}

// checkICU suggests the richer android.icu types over their java.* forms
func checkICU(ctx *Context) {
	for _, m := range invocables(ctx.Class) {
		types := make([]string, 0, len(m.Args)+1)
		if !m.IsCtor {
			types = append(types, m.Type.Name)
		}
		for _, a := range m.Args {
			types = append(types, a.Type.Name)
		}
		for _, t := range types {
			if better, ok := icuReplacements[t]; ok {
				ctx.Warn(m, "", fmt.Sprintf("Type %s should be replaced with richer ICU type %s", t, better))
			}
		}
	}
}

var streamTypes = []string{
	"java.io.FileDescriptor",
	"android.os.ParcelFileDescriptor",
	"java.io.InputStream",
	"java.io.OutputStream",
}

// checkFiles verifies that methods accepting File also accept streams
func checkFiles(ctx *Context) {
	var withFile []*models.Method
	withStream := make(map[string]bool)

	for _, m := range invocables(ctx.Class) {
		takesFile := false
		for _, a := range m.Args {
			if a.Type.Name == "java.io.File" {
				takesFile = true
			}
			if oneOf(a.Type.Name, streamTypes...) {
				withStream[m.Name] = true
			}
		}
		if takesFile {
			withFile = append(withFile, m)
		}
	}

	for _, m := range withFile {
		if !withStream[m.Name] {
			ctx.Warn(m, "M10", "Methods accepting File should also accept FileDescriptor or streams")
		}
	}
}

// distinctFirst are argument types that must lead an argument list
var distinctFirst = []struct{ typ, msg string }{
	{"android.content.Context", "Context is distinct, so it must be the first argument"},
	{"android.content.ContentResolver", "ContentResolver is distinct, so it must be the first argument"},
}

func checkContextFirst(ctx *Context) {
	for _, m := range invocables(ctx.Class) {
		if len(m.Args) < 2 {
			continue
		}
		for _, d := range distinctFirst {
			if m.Args[0].Type.Name == d.typ {
				continue
			}
			for _, a := range m.Args[1:] {
				if a.Type.Name == d.typ {
					ctx.Error(m, "M3", d.msg)
				}
			}
		}
	}
}
