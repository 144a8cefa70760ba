package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Validator represents a validation function
type Validator[T any] func(T) error

// ValidatorChain allows chaining multiple validators
type ValidatorChain[T any] struct {
	validators []Validator[T]
}

// NewValidatorChain creates a new validator chain
func NewValidatorChain[T any](validators ...Validator[T]) *ValidatorChain[T] {
	return &ValidatorChain[T]{validators: validators}
}

// Add adds a validator to the chain
func (vc *ValidatorChain[T]) Add(validator Validator[T]) *ValidatorChain[T] {
	vc.validators = append(vc.validators, validator)
	return vc
}

// Validate runs all validators in the chain
func (vc *ValidatorChain[T]) Validate(value T) error {
	for _, validator := range vc.validators {
		if err := validator(value); err != nil {
			return err
		}
	}
	return nil
}

// NotEmpty validates that a string is not empty
func NotEmpty(field string) Validator[string] {
	return func(value string) error {
		if value == "" {
			return ValidationError{
				Field:   field,
				Value:   value,
				Message: "cannot be empty",
			}
		}
		return nil
	}
}

// MatchesRegex validates that a string matches a regex pattern
func MatchesRegex(field, pattern string) Validator[string] {
	regex := regexp.MustCompile(pattern)
	return func(value string) error {
		if !regex.MatchString(value) {
			return ValidationError{
				Field:   field,
				Value:   value,
				Message: fmt.Sprintf("must match pattern '%s'", pattern),
			}
		}
		return nil
	}
}

// ValidateEach validates each item in a slice using the provided validator
func ValidateEach[T any](field string, itemValidator Validator[T]) Validator[[]T] {
	return func(value []T) error {
		for i, item := range value {
			if err := itemValidator(item); err != nil {
				return ValidationError{
					Field:   fmt.Sprintf("%s[%d]", field, i),
					Value:   item,
					Message: err.Error(),
				}
			}
		}
		return nil
	}
}

// Custom validates using a custom function
func Custom[T any](field string, message string, validatorFunc func(T) bool) Validator[T] {
	return func(value T) error {
		if !validatorFunc(value) {
			return ValidationError{
				Field:   field,
				Value:   value,
				Message: message,
			}
		}
		return nil
	}
}

// Positive validates that an integer is greater than zero
func Positive(field string) Validator[int] {
	return func(value int) error {
		if value <= 0 {
			return ValidationError{
				Field:   field,
				Value:   value,
				Message: "must be greater than zero",
			}
		}
		return nil
	}
}

var qualifiedName = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)*$`)

// IsQualifiedName validates a dotted Java name such as org.mozilla.geckoview
func IsQualifiedName(field string) Validator[string] {
	return func(value string) error {
		if !qualifiedName.MatchString(value) {
			return ValidationError{
				Field:   field,
				Value:   value,
				Message: "must be a dotted Java name",
			}
		}
		return nil
	}
}

// ValidatePackagePrefix validates an allowed or ignored package prefix
func ValidatePackagePrefix(field string) Validator[string] {
	return NewValidatorChain(
		NotEmpty(field),
		IsQualifiedName(field),
	).Validate
}

// ValidateAnnotationName validates a fully-qualified annotation type
func ValidateAnnotationName(field string) Validator[string] {
	return NewValidatorChain(
		NotEmpty(field),
		IsQualifiedName(field),
		Custom(field, "must be fully qualified", func(v string) bool {
			return strings.Contains(v, ".")
		}),
	).Validate
}
