package records

import (
	"errors"
	"fmt"
)

// Environment query names used in EnvironmentError.
const (
	OpGetwd   = "getwd"
	OpHomeDir = "homedir"
)

var (
	// ErrEnvironment matches every EnvironmentError via errors.Is.
	ErrEnvironment = errors.New("records: environment query failed")
	// ErrNoRecords is returned by Inspect when no records file exists yet.
	ErrNoRecords = errors.New("records: no records file")
	// ErrMalformedRecords is returned by Inspect when the file is not a JSON object.
	ErrMalformedRecords = errors.New("records: malformed records file")
)

// EnvironmentError reports a failed working-directory or home-directory query.
// There is no fallback location, so callers treat it as fatal.
type EnvironmentError struct {
	Err error
	Op  string
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("records: %s failed: %v", e.Op, e.Err)
}

func (e *EnvironmentError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrEnvironment) true for any EnvironmentError.
func (e *EnvironmentError) Is(target error) bool {
	return target == ErrEnvironment
}
