package errors

import "fmt"

// ValidationError represents a configuration or input validation failure
type ValidationError struct {
	*BaseError
	Field      string      // field that failed validation
	Value      interface{} // the value that failed validation
	Constraint string      // the validation constraint that failed
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, constraint string) *ValidationError {
	message := fmt.Sprintf("validation failed for field '%s': %s", field, constraint)

	return &ValidationError{
		BaseError:  New(ValidationErrorCode, message),
		Field:      field,
		Value:      value,
		Constraint: constraint,
	}
}

// WithSuggestion adds a helpful suggestion
func (e *ValidationError) WithSuggestion(suggestion string) *ValidationError {
	e.BaseError.WithSuggestion(suggestion)
	return e
}

// ParseError reports a dump line that could not be turned into a model entry.
// It aborts construction of the enclosing class only.
type ParseError struct {
	*BaseError
	Line  string // raw dump line
	Class string // class header being built, if any
}

// NewParseError creates a new parse error for a raw dump line
func NewParseError(message, line string) *ParseError {
	return &ParseError{
		BaseError: New(ParseErrorCode, message),
		Line:      line,
	}
}

// WithClass records the class whose construction was aborted
func (e *ParseError) WithClass(class string) *ParseError {
	e.Class = class
	return e.withContext("class", class)
}

// WithLocation adds location information to the error
func (e *ParseError) WithLocation(loc SourceLocation) *ParseError {
	e.BaseError.WithLocation(loc)
	return e
}

func (e *ParseError) withContext(key string, value interface{}) *ParseError {
	e.BaseError.WithContext(key, value)
	return e
}
