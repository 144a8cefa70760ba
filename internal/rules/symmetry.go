package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/toyz/apilint/internal/models"
)

var (
	isAccessor  = regexp.MustCompile(`^is[A-Z]`)
	hasAccessor = regexp.MustCompile(`^has[A-Z]`)
	getAccessor = regexp.MustCompile(`^get[A-Z]`)
)

func isBooleanGetter(m *models.Method) bool {
	return len(m.Args) == 0 && m.Type.Name == "boolean"
}

func isBooleanSetter(m *models.Method) bool {
	return len(m.Args) == 1 && m.Args[0].Type.Name == "boolean"
}

// checkBoolean verifies that boolean accessors pair with the right setter
// family: isFoo and getFoo with setFoo, hasFoo with setHasFoo.
func checkBoolean(ctx *Context) {
	var setters []*models.Method
	for _, m := range ctx.Class.Methods {
		if isBooleanSetter(m) {
			setters = append(setters, m)
		}
	}

	flag := func(trigger, expected string, wrong ...string) {
		for _, s := range setters {
			if oneOf(s.Name, wrong...) {
				ctx.Error(s, "M6", fmt.Sprintf("Symmetric method for %s must be named %s", trigger, expected))
			}
		}
	}

	for _, m := range ctx.Class.Methods {
		if !isBooleanGetter(m) {
			continue
		}
		switch {
		case isAccessor.MatchString(m.Name):
			target := m.Name[2:]
			flag(m.Name, "set"+target, "setHas"+target)
		case hasAccessor.MatchString(m.Name):
			target := m.Name[3:]
			flag(m.Name, "setHas"+target, "setIs"+target, "set"+target)
		case getAccessor.MatchString(m.Name):
			target := m.Name[3:]
			flag(m.Name, "set"+target, "setIs"+target, "setHas"+target)
		}
	}
}

// checkKotlinOperator warns about methods Kotlin callers can invoke as
// operators, and rejects classes defining both op and opAssign
func checkKotlinOperator(ctx *Context) {
	binary := make(map[string]bool)
	uniqueBinaryOp := func(m *models.Method, op string) {
		if binary[op] {
			ctx.Error(m, "", fmt.Sprintf("Only one of '%s' and '%sAssign' methods should be present for Kotlin", op, op))
		}
		binary[op] = true
	}

	for _, m := range ctx.Class.Methods {
		if m.Has("static") {
			continue
		}
		args := len(m.Args)

		if oneOf(m.Name, "unaryPlus", "unaryMinus", "not") && args == 0 {
			ctx.Warn(m, "", "Method can be invoked as a unary operator from Kotlin")
		}
		if oneOf(m.Name, "inc", "dec") && args == 0 && !m.Type.IsVoid() {
			ctx.Warn(m, "", "Method can be invoked as a pre/postfix inc/decrement operator from Kotlin")
		}
		if oneOf(m.Name, "plus", "minus", "times", "div", "rem", "mod", "rangeTo") && args == 1 {
			ctx.Warn(m, "", "Method can be invoked as a binary operator from Kotlin")
			uniqueBinaryOp(m, m.Name)
		}
		if m.Name == "contains" && args == 1 && m.Type.Name == "boolean" {
			ctx.Warn(m, "", "Method can be invoked as a 'in' operator from Kotlin")
		}
		if (m.Name == "get" && args > 0) || (m.Name == "set" && args > 1) {
			ctx.Warn(m, "", "Method can be invoked with an indexing operator from Kotlin")
		}
		if m.Name == "invoke" {
			ctx.Warn(m, "", "Method can be invoked with function call syntax from Kotlin")
		}
		if oneOf(m.Name, "plusAssign", "minusAssign", "timesAssign", "divAssign", "remAssign", "modAssign") &&
			args == 1 && m.Type.IsVoid() {
			ctx.Warn(m, "", "Method can be invoked as a compound assignment operator from Kotlin")
			uniqueBinaryOp(m, strings.TrimSuffix(m.Name, "Assign"))
		}
	}
}
