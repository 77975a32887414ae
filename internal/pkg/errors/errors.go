package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateID signals an identifier collision on a one-time creation.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrInvalidIdentifier signals a blank or unnormalizable entity name.
	ErrInvalidIdentifier = errors.New("invalid identifier")
	// ErrStoreUnavailable signals a transient backing-store failure.
	// It is the only condition a caller may retry.
	ErrStoreUnavailable = errors.New("store unavailable")
)
