// Package serviceerr defines the error taxonomy shared across the console.
package serviceerr

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrRateLimited = errors.New("rate limited")
var ErrUnauthorized = errors.New("unauthorized")
var ErrRefreshFailed = errors.New("session refresh failed")
var ErrLoginRequired = errors.New("login required")
var ErrAlreadyLoggedIn = errors.New("already logged in")
var ErrNotFound = errors.New("not found")

// APIError is a backend error response coerced into a single detail string.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Detail)
}

// FieldError is one entry of an array-shaped backend validation error.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) String() string {
	return e.Field + " - " + e.Message
}

// ValidationError carries per-field messages from the backend. Forms display
// fields individually; everything else uses the joined summary.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Flatten(), "; ")
}

// Flatten renders each field error as a "field - message" string.
func (e *ValidationError) Flatten() []string {
	lines := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		lines = append(lines, f.String())
	}
	return lines
}
