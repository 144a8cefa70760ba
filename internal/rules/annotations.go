package rules

import (
	"fmt"

	"github.com/toyz/apilint/internal/annotations"
	"github.com/toyz/apilint/internal/models"
)

func checkThreadingAnnotations(ctx *Context) {
	// a class-level annotation covers every method
	if ctx.AnyIn(annotations.ThreadingFamily, ctx.Class.Annotations) {
		return
	}
	for _, m := range ctx.Class.Methods {
		if !ctx.AnyIn(annotations.ThreadingFamily, m.Annotations) {
			ctx.Error(m, "GV3", "Method missing threading annotation. Needs one of: @MainThread, @UiThread, @WorkerThread, @BinderThread, @AnyThread.")
		}
	}
}

// needsNullability reports whether a declaration of type t must state
// its nullability
func needsNullability(t models.Type) bool {
	return t.IsArray || !(t.IsVoid() || models.IsPrimitive(t.Name))
}

func checkNullabilityAnnotations(ctx *Context) {
	c := ctx.Class
	if c.IsEnum {
		return
	}
	missing := func(t models.Type, list []*models.Annotation) bool {
		return needsNullability(t) && !ctx.AnyIn(annotations.NullabilityFamily, list)
	}

	for _, m := range c.Methods {
		if missing(m.Type, m.Annotations) {
			ctx.Error(m, "GV4", "Missing return type nullability annotation. Needs one of @Nullable, @NonNull.")
		}
		for _, a := range m.Args {
			if missing(a.Type, a.Annotations) {
				ctx.Error(a, "GV5", "Missing argument type nullability annotation. Needs one of @Nullable, @NonNull.")
			}
		}
	}
	for _, f := range c.Fields {
		if f.Has("final") && f.Has("static") {
			continue
		}
		if missing(f.Type, f.Annotations) {
			ctx.Error(f, "GV4", "Missing field type nullability annotation. Needs one of @Nullable, @NonNull.")
		}
	}
}

func checkEnumAnnotations(ctx *Context) {
	for _, a := range ctx.Class.Annotations {
		if ctx.In(annotations.EnumDefFamily, a) {
			ctx.Error(a, "GV8", "@IntDef, @LongDef, @StringDef should not appear in the API, make the @interface package private.")
		}
	}
}

// checkDeprecatedAnnotations verifies that deprecated declarations carry
// both the deprecation and the schedule annotation, and that scheduled
// removals happen on time
func checkDeprecatedAnnotations(ctx *Context) {
	cfg := ctx.Config
	if cfg.DeprecationScheduleAnnotation == "" {
		return
	}

	check := func(subject models.Annotated, detail models.Element) {
		deprecated, scheduled := false, false
		for _, a := range subject.AnnotationList() {
			deprecated = deprecated || cfg.IsDeprecated(a)
			scheduled = scheduled || a.Type.Name == cfg.DeprecationScheduleAnnotation
		}
		if !deprecated && !scheduled {
			return
		}
		if !deprecated {
			ctx.Error(detail, "GV12", "Missing @Deprecated annotation.")
			return
		}
		if !scheduled {
			ctx.Error(detail, "GV9", "Missing deprecation schedule annotation. Needs @"+cfg.DeprecationScheduleAnnotation)
			return
		}
		if cfg.LibraryVersion == nil {
			return
		}
		version, ok := cfg.ScheduledVersion(subject)
		if !ok {
			return
		}
		current := *cfg.LibraryVersion
		if version == current {
			ctx.Warn(detail, "GV11", "Deprecated method should be removed in this version")
		}
		if version < current {
			ctx.Error(detail, "GV10", fmt.Sprintf("Deprecated method should be removed. Expected removal version: %d < current version: %d", version, current))
		}
	}

	c := ctx.Class
	check(c, nil)
	for _, m := range c.Methods {
		check(m, m)
	}
	for _, m := range c.Ctors {
		check(m, m)
	}
	for _, f := range c.Fields {
		check(f, f)
	}
}
