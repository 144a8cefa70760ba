package rules

import (
	"slices"
	"strings"

	"github.com/toyz/apilint/internal/models"
)

func checkCallbacks(ctx *Context) {
	c := ctx.Class
	if c.FullName == "android.speech.tts.SynthesisCallback" {
		return
	}

	if strings.HasSuffix(c.Name, "Callbacks") {
		ctx.Error(nil, "L1", "Callback class names should be singular")
	}
	if strings.HasSuffix(c.Name, "Observer") {
		ctx.Warn(nil, "L1", "Class should be named FooCallback")
	}
	if !strings.HasSuffix(c.Name, "Callback") {
		return
	}

	if c.Has("interface") {
		ctx.Error(nil, "CL3", "Callbacks must be abstract class to enable extension in future API levels")
	}
	for _, m := range c.Methods {
		if !onName.MatchString(m.Name) {
			ctx.Error(m, "L1", "Callback method names must be onFoo() style")
		}
	}
}

func checkListeners(ctx *Context) {
	c := ctx.Class
	if !strings.HasSuffix(c.Name, "Listener") {
		return
	}

	if hasPhrase(c.Raw, " abstract class ") {
		ctx.Error(nil, "L1", "Listeners should be an interface, or otherwise renamed Callback")
	}
	for _, m := range c.Methods {
		if !onName.MatchString(m.Name) {
			ctx.Error(m, "L1", "Listener method names must be onFoo() style")
		}
	}
	if len(c.Methods) == 1 && strings.HasPrefix(c.Name, "On") {
		m := c.Methods[0]
		if !strings.EqualFold(m.Name+"Listener", c.Name) {
			ctx.Error(m, "L1", "Single listener method name must match class name")
		}
	}
}

// checkRegister verifies register/unregister and add/remove pairs
func checkRegister(ctx *Context) {
	names := make([]string, len(ctx.Class.Methods))
	for i, m := range ctx.Class.Methods {
		names[i] = m.Name
	}
	has := func(name string) bool { return slices.Contains(names, name) }

	for _, m := range ctx.Class.Methods {
		if strings.Contains(m.Raw, "Callback") {
			if rest, ok := strings.CutPrefix(m.Name, "register"); ok && !has("unregister"+rest) {
				ctx.Error(m, "L2", "Missing unregister method")
			}
			if rest, ok := strings.CutPrefix(m.Name, "unregister"); ok && !has("register"+rest) {
				ctx.Error(m, "L2", "Missing register method")
			}
			if hasPrefix(m.Name, "add", "remove") {
				ctx.Error(m, "L3", "Callback methods should be named register/unregister")
			}
		}

		if strings.Contains(m.Raw, "Listener") {
			if rest, ok := strings.CutPrefix(m.Name, "add"); ok && !has("remove"+rest) {
				ctx.Error(m, "L2", "Missing remove method")
			}
			if rest, ok := strings.CutPrefix(m.Name, "remove"); ok && !strings.HasPrefix(m.Name, "removeAll") && !has("add"+rest) {
				ctx.Error(m, "L2", "Missing add method")
			}
			if hasPrefix(m.Name, "register", "unregister") {
				ctx.Error(m, "L3", "Listener methods should be named add/remove")
			}
		}
	}
}

func isCallbackType(t models.Type) bool {
	return hasSuffix(t.Name, "Listener", "Callback", "Callbacks")
}

// checkCallbackHandlers verifies that registration methods have an
// overload taking the Executor callbacks are delivered on
func checkCallbackHandlers(ctx *Context) {
	c := ctx.Class
	var pkgPath []string
	if c.Package != nil {
		pkgPath = c.Package.Path
	}
	within := func(segment string) bool {
		return slices.Contains(pkgPath, segment) || slices.Contains(c.ExtendsPath, segment)
	}

	// UI packages assume the main thread
	for _, s := range []string{"animation", "view", "graphics", "transition", "widget", "webkit"} {
		if within(s) {
			return
		}
	}
	if within("app") {
		for _, s := range []string{"ActionBar", "Dialog", "Application", "Activity", "Fragment", "Loader"} {
			if strings.Contains(c.FullName, s) {
				return
			}
		}
	}
	if within("content") && strings.Contains(c.FullName, "Loader") {
		return
	}

	// the last registration overload per name is reported
	var order []string
	found := make(map[string]*models.Method)
	byName := make(map[string][]*models.Method)
	for _, m := range invocables(c) {
		if hasPrefix(m.Name, "unregister", "remove") || onName.MatchString(m.Name) {
			continue
		}
		byName[m.Name] = append(byName[m.Name], m)

		for _, a := range m.Args {
			if !isCallbackType(a.Type) {
				continue
			}
			if _, ok := found[m.Name]; !ok {
				order = append(order, m.Name)
			}
			found[m.Name] = m
		}
	}

	for _, name := range order {
		f := found[name]
		takesExecutor := false
		for _, m := range byName[f.Name] {
			for _, a := range m.Args {
				if a.Type.Name == "java.util.concurrent.Executor" {
					takesExecutor = true
				}
			}
		}
		if !takesExecutor {
			ctx.Warn(f, "L1", "Registration methods should have overload that accepts delivery Executor")
		}
	}
}

func checkListenerLast(ctx *Context) {
	for _, m := range invocables(ctx.Class) {
		if strings.Contains(m.Name, "Listener") || strings.Contains(m.Name, "Callback") {
			continue
		}
		found := false
		for _, a := range m.Args {
			if isCallbackType(a.Type) {
				found = true
			} else if found {
				ctx.Warn(m, "M3", "Listeners should always be at end of argument list")
			}
		}
	}
}

func checkUserHandle(ctx *Context) {
	c := ctx.Class
	if hasSuffix(c.Name, "Listener", "Callback", "Callbacks") {
		return
	}
	if oneOf(c.FullName, "android.app.admin.DeviceAdminReceiver", "android.content.pm.LauncherApps",
		"android.os.UserHandle", "android.os.UserManager") {
		return
	}

	for _, m := range c.Methods {
		if hasSuffix(m.Name, "AsUser", "ForUser") || onName.MatchString(m.Name) {
			continue
		}
		for _, a := range m.Args {
			if a.Type.Name == "android.os.UserHandle" {
				ctx.Warn(m, "", "Method taking UserHandle should be named 'doFooAsUser' or 'queryFooForUser'")
			}
		}
	}
}
