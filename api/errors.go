package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid wtw API configuration")
	// ErrNetwork indicates the server could not be reached
	ErrNetwork = errors.New("wtw API unreachable")
	// ErrUnauthorized indicates a missing or rejected token
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound indicates resource not found
	ErrNotFound = errors.New("resource not found")
)

// RequestError is returned for every failed request. A zero StatusCode means
// the request never got a response.
type RequestError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Body       string
	Err        error
}

// Error implements the error interface
func (e *RequestError) Error() string {
	if e.IsNetwork() {
		return fmt.Sprintf("wtw API request %s %s failed: %v", e.Method, e.Path, e.Err)
	}
	return fmt.Sprintf("wtw API error: %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// Unwrap returns the transport error, if any
func (e *RequestError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the package sentinels
func (e *RequestError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.IsNetwork()
	case ErrUnauthorized:
		return e.IsUnauthorized()
	case ErrNotFound:
		return e.IsNotFound()
	}
	return false
}

// IsNetwork checks if the request failed before a response was received
func (e *RequestError) IsNetwork() bool {
	return e.StatusCode == 0
}

// IsNotFound checks if the error indicates a not found response
func (e *RequestError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *RequestError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// ValidationError reports a payload field that failed validation
type ValidationError struct {
	Field string
	Rule  string
	Param string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	switch e.Rule {
	case "required":
		return fmt.Sprintf("%s is required", e.Field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", e.Field)
	case "password":
		return fmt.Sprintf("%s must contain at least one letter and one digit", e.Field)
	case "min", "max":
		return fmt.Sprintf("%s violates %s=%s", e.Field, e.Rule, e.Param)
	default:
		return fmt.Sprintf("%s is invalid (%s)", e.Field, e.Rule)
	}
}
