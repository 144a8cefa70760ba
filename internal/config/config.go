// Package config loads apilint settings from .apilint.yaml
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/toyz/apilint/internal/annotations"
	apierrors "github.com/toyz/apilint/internal/errors"
	"github.com/toyz/apilint/internal/rules"
	"github.com/toyz/apilint/internal/utils"
)

// FileNames are the config file names searched for, in order
var FileNames = []string{".apilint.yaml", ".apilint.yml", "apilint.yaml", "apilint.yml"}

// Config is the on-disk configuration of a lint run
type Config struct {
	AllowGoogle           bool     `yaml:"allow_google"`
	DeprecatedAnnotation  string   `yaml:"deprecated_annotation,omitempty"`
	DeprecationAnnotation string   `yaml:"deprecation_annotation,omitempty"`
	LibraryVersion        *int     `yaml:"library_version,omitempty"`
	IgnoredPackages       []string `yaml:"ignored_packages,omitempty"`
	DisabledRules         []string `yaml:"disabled_rules,omitempty"`
	AllowedPackages       []string `yaml:"allowed_packages,omitempty"`
	FilterErrors          []string `yaml:"filter_errors,omitempty"`

	// Annotations adds annotation types to the builtin families, keyed by
	// family name (nullability, threading, enum_def, deprecated)
	Annotations map[string][]string `yaml:"annotations,omitempty"`

	Output OutputConfig `yaml:"output"`
}

// OutputConfig controls what a run reports and where
type OutputConfig struct {
	ResultJSON  string `yaml:"result_json,omitempty"`
	AppendJSON  bool   `yaml:"append_json"`
	ShowNoticed bool   `yaml:"show_noticed"`
	NoColor     bool   `yaml:"no_color"`
	APIMap      string `yaml:"api_map,omitempty"`
}

// Default returns the configuration used when no file is found
func Default() *Config {
	return &Config{
		DeprecatedAnnotation: rules.DefaultDeprecatedAnnotation,
		IgnoredPackages:      rules.DefaultIgnoredPackages(),
	}
}

// LoadConfig reads and validates a config file. Keys missing from the file
// keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apierrors.WrapFileSystemError("read", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, apierrors.WrapConfigurationError(path, "parse", err).
			WithSuggestion("check the YAML syntax of the config file")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigFromDir loads the first config file found in dir, or the
// defaults when there is none. The returned path is empty in that case.
func LoadConfigFromDir(dir string) (*Config, string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			cfg, err := LoadConfig(path)
			return cfg, path, err
		}
	}
	return Default(), "", nil
}

// SaveConfig writes the configuration as YAML
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return apierrors.WrapConfigurationError(path, "encode", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return apierrors.WrapFileSystemError("write", path, err)
	}
	return nil
}

var (
	validatePackages = utils.ValidateEach("ignored_packages", func(prefix string) error {
		// a trailing dot limits the prefix to subpackages
		return utils.ValidatePackagePrefix("ignored_packages")(strings.TrimSuffix(prefix, "."))
	})
	validateAllowed  = utils.ValidateEach("allowed_packages", utils.ValidatePackagePrefix("allowed_packages"))
	validateRule     = utils.NotEmpty("disabled_rules")
	validateFilter   = utils.ValidateEach("filter_errors", utils.MatchesRegex("filter_errors", `^[A-Z]+[0-9]*$`))
)

// Validate checks every setting and reports all problems at once
func (c *Config) Validate() error {
	errs := apierrors.NewMultipleErrors()
	add := func(field string, err error) {
		if err != nil {
			errs.Add(apierrors.WrapValidationError(field, err))
		}
	}

	if c.DeprecatedAnnotation != "" {
		add("deprecated_annotation", utils.ValidateAnnotationName("deprecated_annotation")(c.DeprecatedAnnotation))
	}
	if c.DeprecationAnnotation != "" {
		add("deprecation_annotation", utils.ValidateAnnotationName("deprecation_annotation")(c.DeprecationAnnotation))
	}
	if c.LibraryVersion != nil {
		add("library_version", utils.Positive("library_version")(*c.LibraryVersion))
	}
	add("ignored_packages", validatePackages(c.IgnoredPackages))
	add("allowed_packages", validateAllowed(c.AllowedPackages))
	add("filter_errors", validateFilter(c.FilterErrors))
	for _, name := range c.DisabledRules {
		add("disabled_rules", validateRule(name))
	}

	families := make([]string, 0, len(c.Annotations))
	for family := range c.Annotations {
		families = append(families, family)
	}
	sort.Strings(families)
	for _, family := range families {
		if _, err := annotations.ParseFamily(family); err != nil {
			errs.Add(apierrors.NewValidationError("annotations", family, err.Error()).
				WithSuggestion("use one of nullability, threading, enum_def, deprecated"))
			continue
		}
		field := "annotations." + family
		add(field, utils.ValidateEach(field, utils.ValidateAnnotationName(field))(c.Annotations[family]))
	}

	return errs.ErrorOrNil()
}

// Rules builds the rule engine configuration. Custom annotation types are
// registered on a fresh registry alongside the builtins.
func (c *Config) Rules() (rules.Config, error) {
	rc := rules.DefaultConfig()
	rc.AllowGoogle = c.AllowGoogle
	rc.DeprecationScheduleAnnotation = c.DeprecationAnnotation
	rc.LibraryVersion = c.LibraryVersion
	rc.DisabledRules = c.DisabledRules
	if c.DeprecatedAnnotation != "" {
		rc.DeprecatedAnnotation = c.DeprecatedAnnotation
	}
	if c.IgnoredPackages != nil {
		rc.IgnoredPackages = c.IgnoredPackages
	}

	if len(c.Annotations) == 0 {
		return rc, nil
	}
	registry := annotations.NewRegistry()
	if err := annotations.RegisterBuiltins(registry); err != nil {
		return rc, apierrors.WrapConfigurationError("annotations", "register", err)
	}
	for family, names := range c.Annotations {
		f, err := annotations.ParseFamily(family)
		if err != nil {
			return rc, apierrors.WrapConfigurationError("annotations", "register", err)
		}
		var fresh []string
		seen := make(map[string]bool)
		for _, name := range names {
			if !seen[name] && !registry.Is(f, name) {
				fresh = append(fresh, name)
			}
			seen[name] = true
		}
		if err := registry.Register(f, fresh...); err != nil {
			return rc, apierrors.WrapConfigurationError("annotations", "register", err)
		}
	}
	rc.Annotations = registry
	return rc, nil
}
