package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCoordinate flags a NaN or out-of-range latitude/longitude.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	// ErrStaleOrMissingFix means route planning was requested for a student
	// with no known device location.
	ErrStaleOrMissingFix = errors.New("no recent device fix for student")
	// ErrAlertNotFound means escalation was triggered for an unknown alert id.
	ErrAlertNotFound = errors.New("alert not found")
)

// ExternalStoreError wraps a collaborator I/O failure. The engine propagates
// it without retrying; retry policy belongs to the collaborator or caller.
type ExternalStoreError struct {
	Store string
	Err   error
}

func (e *ExternalStoreError) Error() string {
	return fmt.Sprintf("%s store: %v", e.Store, e.Err)
}

func (e *ExternalStoreError) Unwrap() error { return e.Err }

func NewExternalStoreError(store string, err error) error {
	return &ExternalStoreError{Store: store, Err: err}
}
