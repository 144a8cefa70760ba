package annotations

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps annotation families to the fully-qualified annotation
// types that belong to them
type Registry interface {
	// Register adds annotation types to a family
	Register(family Family, names ...string) error

	// Is reports whether name belongs to the family
	Is(family Family, name string) bool

	// Names returns the sorted annotation types of a family
	Names(family Family) []string

	// ListFamilies returns all families with at least one annotation type
	ListFamilies() []Family
}

type registry struct {
	mu       sync.RWMutex
	families map[Family]map[string]struct{}
}

// NewRegistry creates an empty annotation registry
func NewRegistry() Registry {
	return &registry{
		families: make(map[Family]map[string]struct{}),
	}
}

var (
	defaultRegistry     Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the shared registry holding the builtin families
func DefaultRegistry() Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
		if err := RegisterBuiltins(defaultRegistry); err != nil {
			panic(err)
		}
	})
	return defaultRegistry
}

// RegisterBuiltins registers the Android support and AndroidX annotations
func RegisterBuiltins(r Registry) error {
	builtins := map[Family][]string{
		NullabilityFamily: {
			"android.support.annotation.NonNull",
			"android.support.annotation.Nullable",
			"androidx.annotation.NonNull",
			"androidx.annotation.Nullable",
		},
		ThreadingFamily: {
			"android.support.annotation.MainThread",
			"android.support.annotation.UiThread",
			"android.support.annotation.WorkerThread",
			"android.support.annotation.BinderThread",
			"android.support.annotation.AnyThread",
			"androidx.annotation.MainThread",
			"androidx.annotation.UiThread",
			"androidx.annotation.WorkerThread",
			"androidx.annotation.BinderThread",
			"androidx.annotation.AnyThread",
		},
		EnumDefFamily: {
			"android.support.annotation.IntDef",
			"android.support.annotation.LongDef",
			"android.support.annotation.StringDef",
			"androidx.annotation.IntDef",
			"androidx.annotation.LongDef",
			"androidx.annotation.StringDef",
		},
		DeprecatedFamily: {
			"java.lang.Deprecated",
		},
	}

	for family, names := range builtins {
		if err := r.Register(family, names...); err != nil {
			return err
		}
	}
	return nil
}

// Register adds annotation types to a family
func (r *registry) Register(family Family, names ...string) error {
	if family == UnknownFamily {
		return fmt.Errorf("cannot register annotations for unknown family")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.families[family]
	if !ok {
		set = make(map[string]struct{})
		r.families[family] = set
	}

	for _, name := range names {
		if name == "" {
			return fmt.Errorf("annotation name cannot be empty for family %s", family)
		}
		if _, exists := set[name]; exists {
			return fmt.Errorf("annotation %s is already registered for family %s", name, family)
		}
		set[name] = struct{}{}
	}
	return nil
}

// Is reports whether name belongs to the family
func (r *registry) Is(family Family, name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.families[family][name]
	return ok
}

// Names returns the sorted annotation types of a family
func (r *registry) Names(family Family) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.families[family]))
	for name := range r.families[family] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListFamilies returns all families with at least one annotation type
func (r *registry) ListFamilies() []Family {
	r.mu.RLock()
	defer r.mu.RUnlock()

	families := make([]Family, 0, len(r.families))
	for family, set := range r.families {
		if len(set) > 0 {
			families = append(families, family)
		}
	}
	sort.Slice(families, func(i, j int) bool { return families[i] < families[j] })
	return families
}
