package domain

import (
	"errors"
)

// Sentinel errors - match with errors.Is()
var (
	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates invalid input (bad id, query too short)
	ErrValidation = errors.New("validation failed")

	// ErrDataIntegrity indicates the store violated a structural invariant,
	// e.g. a cycle in the folder parent chain. Never silently truncated.
	ErrDataIntegrity = errors.New("data integrity violation")

	// ErrUnavailable indicates a transient store connectivity failure
	ErrUnavailable = errors.New("store unavailable")
)
