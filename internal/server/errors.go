package server

import (
	"errors"
	"fmt"
	"net/http"

	apierrors "github.com/toyz/apilint/internal/errors"
)

// HTTPError is an error with the status code it is reported with
type HTTPError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// ErrBadRequest creates a 400 Bad Request error
func ErrBadRequest(message string) *HTTPError {
	return &HTTPError{StatusCode: http.StatusBadRequest, Message: message}
}

// ErrUnprocessableEntity creates a 422 Unprocessable Entity error with
// validation details
func ErrUnprocessableEntity(message string, details any) *HTTPError {
	return &HTTPError{StatusCode: http.StatusUnprocessableEntity, Message: message, Details: details}
}

// toHTTPError maps lint errors to responses. Configuration and validation
// problems are the client's fault; everything else is not.
func toHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var lintErr apierrors.LintError
	if errors.As(err, &lintErr) {
		switch lintErr.ErrorCode() {
		case apierrors.ValidationErrorCode, apierrors.ConfigurationErrorCode, apierrors.ParseErrorCode:
			return ErrUnprocessableEntity(err.Error(), lintErr.Suggestions())
		}
	}
	return &HTTPError{StatusCode: http.StatusInternalServerError, Message: err.Error()}
}
