package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/toyz/apilint/internal/models"
)

func isStringConstant(f *models.Field) bool {
	return f.Has("static") && f.Has("final") && f.Type.Name == "java.lang.String"
}

// checkActions verifies that intent actions are named ACTION_FOO and
// scoped by package, e.g. ACTION_BAR = "android.foo.action.BAR"
func checkActions(ctx *Context) {
	c := ctx.Class
	for _, f := range c.Fields {
		if !f.HasValue || strings.HasPrefix(f.Name, "EXTRA_") {
			continue
		}
		if oneOf(f.Name, "SERVICE_INTERFACE", "PROVIDER_INTERFACE") || strings.Contains(f.Name, "INTERACTION") {
			continue
		}
		if !isStringConstant(f) {
			continue
		}
		if !strings.Contains(f.Name, "_ACTION") && !strings.Contains(f.Name, "ACTION_") &&
			!strings.Contains(strings.ToLower(f.Value), ".action.") {
			continue
		}

		name, ok := strings.CutPrefix(f.Name, "ACTION_")
		if !ok {
			ctx.Error(f, "C3", "Intent action constant name must be ACTION_FOO")
			continue
		}

		var prefix string
		switch c.FullName {
		case "android.content.Intent":
			prefix = "android.intent.action"
		case "android.provider.Settings":
			prefix = "android.settings"
		case "android.app.admin.DevicePolicyManager", "android.app.admin.DeviceAdminReceiver":
			prefix = "android.app.action"
		default:
			prefix = c.PackageName() + ".action"
		}
		if expected := prefix + "." + name; f.Value != expected {
			ctx.Error(f, "C4", fmt.Sprintf("Inconsistent action value; expected '%s'", expected))
		}
	}
}

// checkExtras verifies that intent extras are named EXTRA_FOO and scoped
// by package, e.g. EXTRA_BAR = "android.foo.extra.BAR"
func checkExtras(ctx *Context) {
	c := ctx.Class
	if oneOf(c.FullName, "android.app.Notification", "android.appwidget.AppWidgetManager") {
		return
	}

	for _, f := range c.Fields {
		if !f.HasValue || strings.HasPrefix(f.Name, "ACTION_") || !isStringConstant(f) {
			continue
		}
		if !strings.Contains(f.Name, "_EXTRA") && !strings.Contains(f.Name, "EXTRA_") &&
			!strings.Contains(strings.ToLower(f.Value), ".extra") {
			continue
		}

		name, ok := strings.CutPrefix(f.Name, "EXTRA_")
		if !ok {
			ctx.Error(f, "C3", "Intent extra must be EXTRA_FOO")
			continue
		}

		var prefix string
		switch {
		case c.PackageName() == "android.content" && c.Name == "Intent":
			prefix = "android.intent.extra"
		case c.PackageName() == "android.app.admin":
			prefix = "android.app.extra"
		default:
			prefix = c.PackageName() + ".extra"
		}
		if expected := prefix + "." + name; f.Value != expected {
			ctx.Error(f, "C4", fmt.Sprintf("Inconsistent extra value; expected '%s'", expected))
		}
	}
}

func checkIntentBuilder(ctx *Context) {
	if ctx.Class.Name == "Intent" {
		return
	}
	for _, m := range ctx.Class.Methods {
		if m.Type.Name != "android.content.Intent" {
			continue
		}
		if !strings.HasPrefix(m.Name, "create") || !strings.HasSuffix(m.Name, "Intent") {
			ctx.Warn(m, "FW1", "Methods creating an Intent should be named createFooIntent()")
		}
	}
}

// helperBases are framework classes whose subclasses carry a matching
// suffix and, optionally, an interface constant naming the subclass
var helperBases = []struct {
	base, suffix, constant string
}{
	{"android.app.Service", "Service", "SERVICE_INTERFACE"},
	{"android.content.ContentProvider", "Provider", "PROVIDER_INTERFACE"},
	{"android.content.BroadcastReceiver", "Receiver", ""},
	{"android.app.Activity", "Activity", ""},
}

func checkHelperClasses(ctx *Context) {
	c := ctx.Class
	testMethods := false

	for _, h := range helperBases {
		if !extendsFrom(c, h.base) {
			continue
		}
		testMethods = true
		if !strings.HasSuffix(c.Name, h.suffix) {
			ctx.Error(nil, "CL4", "Inconsistent class name; should be Foo"+h.suffix)
		}
		if h.constant == "" {
			continue
		}
		for _, f := range c.Fields {
			if f.Name == h.constant && f.Value != c.FullName {
				ctx.Error(f, "C4", fmt.Sprintf("Inconsistent interface constant; expected '%s'", c.FullName))
			}
		}
	}

	if !testMethods {
		return
	}
	for _, m := range c.Methods {
		if m.Has("final") || onName.MatchString(m.Name) {
			continue
		}
		if m.Has("abstract") {
			ctx.Warn(m, "", "Methods implemented by developers should be named onFoo()")
		} else {
			ctx.Warn(m, "", "If implemented by developer, should be named onFoo(); otherwise consider marking final")
		}
	}
}

var serviceName = regexp.MustCompile(`^([A-Z_]+)_SERVICE`)

// checkServices verifies that Context service names match their constant,
// FOO_BAR_SERVICE = "foo_bar"
func checkServices(ctx *Context) {
	if ctx.Class.FullName != "android.content.Context" {
		return
	}
	for _, f := range ctx.Class.Fields {
		if f.Type.Name != "java.lang.String" {
			continue
		}
		match := serviceName.FindStringSubmatch(f.Name)
		if match == nil {
			continue
		}
		if expected := strings.ToLower(match[1]); f.Value != expected {
			ctx.Error(f, "C4", fmt.Sprintf("Inconsistent service value; expected '%s'", expected))
		}
	}
}
