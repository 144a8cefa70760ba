package rules

import (
	"sync"

	apierrors "github.com/toyz/apilint/internal/errors"
)

// CheckFunc examines one class and records its findings through ctx
type CheckFunc func(ctx *Context)

// Rule is a named check
type Rule struct {
	Name  string
	Check CheckFunc
}

// Registry holds rules in registration order
type Registry struct {
	rules []Rule
	index map[string]int
	mu    sync.RWMutex
}

// NewRegistry creates an empty rule registry
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// BuiltinRegistry returns a registry holding every builtin rule in
// execution order
func BuiltinRegistry() *Registry {
	r := NewRegistry()
	for _, rule := range builtinRules {
		if err := r.Register(rule); err != nil {
			panic(err)
		}
	}
	return r
}

// Register appends a rule. Names must be unique.
func (r *Registry) Register(rule Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rule.Name == "" || rule.Check == nil {
		return apierrors.New(apierrors.ValidationErrorCode, "rule needs a name and a check")
	}
	if _, exists := r.index[rule.Name]; exists {
		return apierrors.Newf(apierrors.ValidationErrorCode, "rule %s is already registered", rule.Name).
			WithContext("rule", rule.Name)
	}

	r.index[rule.Name] = len(r.rules)
	r.rules = append(r.rules, rule)
	return nil
}

// Get returns a rule by name
func (r *Registry) Get(name string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[name]
	if !ok {
		return Rule{}, false
	}
	return r.rules[i], true
}

// Has reports whether a rule is registered
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// List returns the rule names in execution order
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.rules))
	for i, rule := range r.rules {
		names[i] = rule.Name
	}
	return names
}

// Rules returns a copy of the rules in execution order, leaving out the
// named ones
func (r *Registry) Rules(skip ...string) []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	skipped := make(map[string]bool, len(skip))
	for _, name := range skip {
		skipped[name] = true
	}

	out := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		if !skipped[rule.Name] {
			out = append(out, rule)
		}
	}
	return out
}

var builtinRules = []Rule{
	{"constants", checkConstants},
	{"enums", checkEnums},
	{"class_names", checkClassNames},
	{"method_names", checkMethodNames},
	{"callbacks", checkCallbacks},
	{"listeners", checkListeners},
	{"actions", checkActions},
	{"extras", checkExtras},
	{"equals", checkEquals},
	{"parcelable", checkParcelable},
	{"protected", checkProtected},
	{"fields", checkFields},
	{"register", checkRegister},
	{"sync", checkSync},
	{"intent_builder", checkIntentBuilder},
	{"helper_classes", checkHelperClasses},
	{"builder", checkBuilder},
	{"aidl", checkAIDL},
	{"internal", checkInternal},
	{"layering", checkLayering},
	{"boolean", checkBoolean},
	{"collections", checkCollections},
	{"flags", checkFlags},
	{"exception", checkException},
	{"google", checkGoogle},
	{"bitset", checkBitSet},
	{"manager", checkManager},
	{"boxed", checkBoxed},
	{"static_utils", checkStaticUtils},
	{"callback_handlers", checkCallbackHandlers},
	{"context_first", checkContextFirst},
	{"listener_last", checkListenerLast},
	{"resource_names", checkResourceNames},
	{"files", checkFiles},
	{"manager_list", checkManagerList},
	{"abstract_inner", checkAbstractInner},
	{"runtime_exceptions", checkRuntimeExceptions},
	{"error", checkError},
	{"units", checkUnits},
	{"closable", checkClosable},
	{"kotlin_keyword", checkKotlinKeyword},
	{"kotlin_operator", checkKotlinOperator},
	{"collections_over_arrays", checkCollectionsOverArrays},
	{"user_handle", checkUserHandle},
	{"params", checkParams},
	{"services", checkServices},
	{"tense", checkTense},
	{"icu", checkICU},
	{"clone", checkClone},
	{"final_fields_only", checkFinalFieldsOnly},
	{"threading_annotations", checkThreadingAnnotations},
	{"nullability_annotations", checkNullabilityAnnotations},
	{"default_impl", checkDefaultImpl},
	{"enum_annotations", checkEnumAnnotations},
	{"deprecated_annotations", checkDeprecatedAnnotations},
}
