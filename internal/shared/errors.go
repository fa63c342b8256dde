package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a uniqueness conflict, e.g. on quote numbers.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrValidation indicates rejected input or a policy-bound violation.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidStatus indicates a lifecycle transition from a state that does not permit it.
	ErrInvalidStatus = errors.New("invalid status transition")
	// ErrVersionConflict occurs when a stale quote snapshot is written over a newer one.
	ErrVersionConflict = errors.New("version conflict")
)
