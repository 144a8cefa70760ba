package rules

import (
	"regexp"
	"strings"

	"github.com/toyz/apilint/internal/models"
)

var (
	internalField = regexp.MustCompile(`^[ms][A-Z]`)
	constantField = regexp.MustCompile(`^[A-Z_]`)
	innerClass    = regexp.MustCompile(`^.+?\.[A-Z][^.]+\.[A-Z]`)
	google        = regexp.MustCompile(`(?i)google`)
)

func checkEquals(ctx *Context) {
	var eq, hc bool
	for _, m := range ctx.Class.Methods {
		if hasPhrase(m.Raw, " static ") {
			continue
		}
		if m.Name == "equals" && m.Type.Name == "boolean" && len(m.Args) == 1 && m.Args[0].Type.Name == "java.lang.Object" {
			eq = true
		}
		if m.Name == "hashCode" && m.Type.Name == "int" && len(m.Args) == 0 {
			hc = true
		}
	}
	if eq != hc {
		ctx.Error(nil, "M8", "Must override both equals and hashCode; missing one")
	}
}

func checkParcelable(ctx *Context) {
	c := ctx.Class
	if !implements(c, "android.os.Parcelable") {
		return
	}

	var creator, write, describe bool
	for _, f := range c.Fields {
		creator = creator || f.Name == "CREATOR"
	}
	for _, m := range c.Methods {
		write = write || m.Name == "writeToParcel"
		describe = describe || m.Name == "describeContents"
	}
	if !creator || !write || !describe {
		ctx.Error(nil, "FW3", "Parcelable requires CREATOR, writeToParcel, and describeContents; missing one")
	}

	if !hasPhrase(c.Raw, " final class ") && !hasPhrase(c.Raw, " final deprecated class ") {
		ctx.Error(nil, "FW8", "Parcelable classes must be final")
	}

	for _, ctor := range c.Ctors {
		if len(ctor.Args) == 1 && ctor.Args[0].Type.Name == "android.os.Parcel" {
			ctx.Error(ctor, "FW3", "Parcelable inflation is exposed through CREATOR, not raw constructors")
		}
	}
}

func checkProtected(ctx *Context) {
	for _, m := range ctx.Class.Methods {
		if m.Has("protected") {
			ctx.Error(m, "M7", "Protected methods not allowed; must be public")
		}
	}
	for _, f := range ctx.Class.Fields {
		if f.Has("protected") {
			ctx.Error(f, "M7", "Protected fields not allowed; must be public")
		}
	}
}

// checkFields catches exposed mFoo members and constants that can change
func checkFields(ctx *Context) {
	for _, f := range ctx.Class.Fields {
		if internalField.MatchString(f.Name) {
			ctx.Error(f, "F1", "Internal objects must not be exposed")
		}
		if constantField.MatchString(f.Name) && (!f.Has("static") || !f.Has("final")) {
			ctx.Error(f, "C2", "Constants must be marked static final")
		}
	}
}

func checkSync(ctx *Context) {
	for _, m := range ctx.Class.Methods {
		if m.Has("synchronized") {
			ctx.Error(m, "M5", "Internal locks must not be exposed")
		}
	}
}

// checkBuilder verifies that builder setters chain and that a build()
// method exists
func checkBuilder(ctx *Context) {
	c := ctx.Class
	if hasPhrase(c.Raw, " extends ") || !strings.HasSuffix(c.Name, "Builder") {
		return
	}
	if c.Name != "Builder" {
		ctx.Warn(nil, "", "Builder should be defined as inner class")
	}

	hasBuild := false
	for _, m := range c.Methods {
		switch {
		case m.Name == "build":
			hasBuild = true
			continue
		case hasPrefix(m.Name, "get", "clear"):
			continue
		}
		if strings.HasPrefix(m.Name, "with") {
			ctx.Warn(m, "", "Builder methods names should use setFoo() style")
		}
		if strings.HasPrefix(m.Name, "set") && !strings.HasSuffix(m.Type.Name, c.FullName) {
			ctx.Warn(m, "M4", "Methods must return the builder object")
		}
	}
	if !hasBuild {
		ctx.Warn(nil, "", "Missing build() method")
	}
}

func checkAIDL(ctx *Context) {
	c := ctx.Class
	if extendsFrom(c, "android.os.Binder") || implements(c, "android.os.IInterface") {
		ctx.Error(nil, "", "Raw AIDL interfaces must not be exposed")
	}
}

func checkInternal(ctx *Context) {
	if strings.HasPrefix(ctx.Class.PackageName(), "com.android") {
		ctx.Error(nil, "", "Internal classes must not be exposed")
	}
}

// layers orders framework packages from highest to lowest; a package may
// only depend on packages ranked at or below its own.
var layers = [][]string{
	{
		"android.service",
		"android.accessibilityservice",
		"android.inputmethodservice",
		"android.printservice",
		"android.appwidget",
		"android.webkit",
		"android.preference",
		"android.gesture",
		"android.print",
	},
	{"android.app"},
	{"android.widget"},
	{"android.view"},
	{"android.animation"},
	{"android.provider"},
	{"android.content", "android.graphics.drawable"},
	{"android.database"},
	{"android.graphics"},
	{"android.text"},
	{"android.os"},
	{"android.util"},
}

func layer(name string) (int, bool) {
	for i, prefixes := range layers {
		if hasPrefix(name, prefixes...) {
			return i, true
		}
	}
	return 0, false
}

func checkLayering(ctx *Context) {
	own, ok := layer(ctx.Class.PackageName())
	if !ok {
		return
	}
	violates := func(t models.Type) bool {
		rank, ok := layer(t.Name)
		return ok && rank < own
	}

	for _, f := range ctx.Class.Fields {
		if violates(f.Type) {
			ctx.Warn(f, "FW6", "Field type violates package layering")
		}
	}
	for _, m := range ctx.Class.Methods {
		if violates(m.Type) {
			ctx.Warn(m, "FW6", "Method return type violates package layering")
		}
		for _, a := range m.Args {
			if violates(a.Type) {
				ctx.Warn(m, "FW6", "Method argument type violates package layering")
			}
		}
	}
}

func checkGoogle(ctx *Context) {
	if ctx.Config.AllowGoogle {
		return
	}
	c := ctx.Class
	if google.MatchString(c.Raw) {
		ctx.Error(nil, "", "Must never reference Google")
	}
	for _, m := range c.Ctors {
		if google.MatchString(m.Raw) {
			ctx.Error(m, "", "Must never reference Google")
		}
	}
	for _, f := range c.Fields {
		if google.MatchString(f.Raw) {
			ctx.Error(f, "", "Must never reference Google")
		}
	}
	for _, m := range c.Methods {
		if google.MatchString(m.Raw) {
			ctx.Error(m, "", "Must never reference Google")
		}
	}
}

// checkManager verifies that FooManager is only obtained from Context
func checkManager(ctx *Context) {
	c := ctx.Class
	if !strings.HasSuffix(c.Name, "Manager") {
		return
	}
	for _, ctor := range c.Ctors {
		ctx.Error(ctor, "", "Managers must always be obtained from Context; no direct constructors")
	}
	for _, m := range c.Methods {
		if m.Type.Name == c.FullName {
			ctx.Error(m, "", "Managers must always be obtained from Context")
		}
	}
}

func checkManagerList(ctx *Context) {
	if !strings.HasSuffix(ctx.Class.Name, "Manager") {
		return
	}
	for _, m := range ctx.Class.Methods {
		if strings.HasPrefix(m.Type.Name, "android.") && m.Type.IsArray {
			ctx.Warn(m, "", "Methods should return List<? extends Parcelable> instead of Parcelable[] to support ParceledListSlice under the hood")
		}
	}
}

// checkStaticUtils flags fully static helper classes that expose the
// default constructor
func checkStaticUtils(ctx *Context) {
	c := ctx.Class
	if hasPrefix(c.FullName, "android.opengl", "android.R") {
		return
	}
	if len(c.Ctors) != 1 || len(c.Ctors[0].Args) != 0 {
		return
	}
	if len(c.Fields)+len(c.Methods) == 0 {
		return
	}
	for _, f := range c.Fields {
		if !f.Has("static") {
			return
		}
	}
	for _, m := range c.Methods {
		if !m.Has("static") {
			return
		}
	}
	ctx.Error(nil, "", "Fully-static utility classes must not have constructor")
}

func checkAbstractInner(ctx *Context) {
	c := ctx.Class
	if innerClass.MatchString(c.FullName) && hasPhrase(c.Raw, " abstract ") && !hasPhrase(c.Raw, " static ") {
		ctx.Warn(nil, "", "Abstract inner classes should be static to improve testability")
	}
}

func checkError(ctx *Context) {
	c := ctx.Class
	if c.Extends == nil {
		return
	}
	if strings.HasSuffix(c.Extends.Name, "Error") {
		ctx.Error(nil, "", "Trouble must be reported through an Exception, not Error")
	}
	if strings.HasSuffix(c.Extends.Name, "Exception") && !strings.HasSuffix(c.Name, "Exception") {
		ctx.Error(nil, "", "Exceptions must be named FooException")
	}
}

var releaseMethods = []string{"close", "release", "destroy", "finish", "finalize", "disconnect", "shutdown", "stop", "free", "quit"}

func checkClosable(ctx *Context) {
	c := ctx.Class
	if implements(c, "java.lang.AutoCloseable") || implements(c, "java.io.Closeable") {
		return
	}
	for _, m := range c.Methods {
		if len(m.Args) == 0 && oneOf(m.Name, releaseMethods...) {
			ctx.Warn(m, "", "Classes that release resources should implement AutoClosable and CloseGuard")
			return
		}
	}
}

func checkClone(ctx *Context) {
	for _, m := range ctx.Class.Methods {
		if m.Name == "clone" {
			ctx.Error(m, "", "Provide an explicit copy constructor instead of implementing clone()")
		}
	}
}

// checkFinalFieldsOnly keeps value classes made only of final fields
// mockable
func checkFinalFieldsOnly(ctx *Context) {
	c := ctx.Class
	if len(c.Methods) != 0 || len(c.Fields) == 0 {
		return
	}
	for _, f := range c.Fields {
		if !f.Has("final") {
			return
		}
	}
	if len(c.Ctors) == 0 {
		ctx.Error(nil, "GV1", "Field-only classes need at least one constructor for mocking.")
	}
	if c.Has("final") {
		ctx.Error(nil, "GV2", "Field-only classes should not be final for mocking.")
	}
}

func checkDefaultImpl(ctx *Context) {
	c := ctx.Class
	// single-method interfaces are functional and stay abstract
	if !c.Has("interface") || len(c.Methods) == 1 {
		return
	}
	for _, m := range c.Methods {
		if !m.Has("default") && !m.Has("static") {
			ctx.Error(m, "GV6", "All interface methods should have a default implementation for backwards compatibility")
		}
	}
}
