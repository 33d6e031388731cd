package models

import "errors"

// Domain errors that can be returned by repositories
var (
	// ErrNotFound indicates the requested entity was not found
	ErrNotFound = errors.New("not found")

	// ErrStateConflict indicates a guarded update found a different current state
	ErrStateConflict = errors.New("state conflict")

	// ErrDuplicateSuccess indicates the order already has a succeeded transaction
	ErrDuplicateSuccess = errors.New("order already has a succeeded transaction")

	// ErrDuplicateCorrelation indicates the provider correlation id is already mapped
	ErrDuplicateCorrelation = errors.New("duplicate provider correlation id")
)
