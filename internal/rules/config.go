package rules

import (
	"strconv"
	"strings"

	"github.com/toyz/apilint/internal/annotations"
	"github.com/toyz/apilint/internal/models"
)

// DefaultDeprecatedAnnotation marks deprecated declarations
const DefaultDeprecatedAnnotation = "java.lang.Deprecated"

// Config controls which checks run and how they interpret annotations
type Config struct {
	// AllowGoogle disables the check for references to Google
	AllowGoogle bool

	// DeprecatedAnnotation is the annotation type marking deprecated declarations
	DeprecatedAnnotation string

	// DeprecationScheduleAnnotation must accompany every deprecated
	// declaration. Deprecation checks are skipped when it is empty.
	DeprecationScheduleAnnotation string

	// LibraryVersion is the version being released. Removal schedules are
	// only compared when it is set.
	LibraryVersion *int

	// IgnoredPackages lists package prefixes whose classes are not examined
	IgnoredPackages []string

	// DisabledRules names rules that are skipped
	DisabledRules []string

	// Annotations resolves annotation families; DefaultRegistry when nil
	Annotations annotations.Registry
}

// DefaultIgnoredPackages returns the package prefixes skipped by default
func DefaultIgnoredPackages() []string {
	return []string{
		"java",
		"junit",
		"org.apache",
		"org.xml",
		"org.json",
		"org.w3c",
		"android.icu.",
	}
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	return Config{
		DeprecatedAnnotation: DefaultDeprecatedAnnotation,
		IgnoredPackages:      DefaultIgnoredPackages(),
		Annotations:          annotations.DefaultRegistry(),
	}
}

func (c *Config) registry() annotations.Registry {
	if c.Annotations == nil {
		return annotations.DefaultRegistry()
	}
	return c.Annotations
}

func (c *Config) deprecatedAnnotation() string {
	if c.DeprecatedAnnotation == "" {
		return DefaultDeprecatedAnnotation
	}
	return c.DeprecatedAnnotation
}

// IsDeprecated reports whether the annotation marks a deprecation. A
// configured annotation replaces java.lang.Deprecated; other members of
// the deprecated family still count.
func (c *Config) IsDeprecated(a *models.Annotation) bool {
	name := a.Type.Name
	switch configured := c.deprecatedAnnotation(); {
	case name == configured:
		return true
	case name == DefaultDeprecatedAnnotation:
		return false
	}
	return c.registry().Is(annotations.DeprecatedFamily, name)
}

// ScheduleAnnotation returns the deprecation schedule annotation of a
// declaration, or nil
func (c *Config) ScheduleAnnotation(subject models.Annotated) *models.Annotation {
	if c.DeprecationScheduleAnnotation == "" {
		return nil
	}
	for _, a := range subject.AnnotationList() {
		if a.Type.Name == c.DeprecationScheduleAnnotation {
			return a
		}
	}
	return nil
}

// ScheduledVersion returns the removal version recorded on a declaration
func (c *Config) ScheduledVersion(subject models.Annotated) (int, bool) {
	a := c.ScheduleAnnotation(subject)
	if a == nil {
		return 0, false
	}
	raw, ok := a.Arg("version")
	if !ok {
		return 0, false
	}
	version, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return version, true
}

// RemovalDue reports whether the declaration is scheduled for removal in
// the configured library version
func (c *Config) RemovalDue(subject models.Annotated) bool {
	if c.LibraryVersion == nil {
		return false
	}
	version, ok := c.ScheduledVersion(subject)
	return ok && version == *c.LibraryVersion
}
