package config

import (
	"fmt"
	"strings"
)

// ValidationError collects every problem found in a settings file so they can
// be reported together.
type ValidationError struct {
	Errors []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "settings validation failed"
	case 1:
		return fmt.Sprintf("settings validation failed: %s", e.Errors[0])
	default:
		return fmt.Sprintf("settings validation failed with %d errors:\n  - %s",
			len(e.Errors), strings.Join(e.Errors, "\n  - "))
	}
}

// Addf appends a formatted error message.
func (e *ValidationError) Addf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

// Add appends an error message.
func (e *ValidationError) Add(msg string) {
	e.Errors = append(e.Errors, msg)
}

// HasErrors returns true if there are any validation errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// ToError returns the ValidationError as an error if there are errors, otherwise nil.
func (e *ValidationError) ToError() error {
	if e.HasErrors() {
		return e
	}
	return nil
}
