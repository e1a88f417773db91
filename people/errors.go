/*
errors.go - Error taxonomy for personnel persistence

PURPOSE:
  All error types for the people domain in one place. Callers distinguish
  categories with errors.Is / errors.As:

    ValidationError    malformed input; reported to the caller, not retried
    ErrNotFound        unknown id or email; reported, not fatal
    ErrDuplicateEmail  email uniqueness violation at the store boundary
    StoreError         persistence failure; logged, record skipped, batch
                       continues

SEE ALSO:
  - store.go: Operations that produce these errors
*/
package people

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	// ErrNotFound is returned when no record matches the given id or email.
	ErrNotFound = errors.New("person not found")

	// ErrDuplicateEmail is returned when Add or Update would violate email
	// uniqueness.
	ErrDuplicateEmail = errors.New("email already registered")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// ValidationError names the field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StoreError wraps a persistence-level failure with the operation name.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
