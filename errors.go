package mycarbs

import "errors"

// Errors reported by the library. They are wrapped with context, test them
// with errors.Is.
var (
	// ErrValidationFailed reports an input with a bad shape or range.
	ErrValidationFailed = errors.New("validation failed")
	// ErrNotFound reports a reference to a missing food or profile.
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable reports a store that cannot be read or written.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrStoreCorrupted reports a stored payload that cannot be decoded.
	ErrStoreCorrupted = errors.New("store corrupted")
	// ErrInvalidPortionIndex reports a portion index outside the food portions.
	ErrInvalidPortionIndex = errors.New("invalid portion index")
	// ErrInvalidQuantity reports a negative or non finite quantity.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrCannotRemoveLastCategory reports an attempt to leave a food without category.
	ErrCannotRemoveLastCategory = errors.New("cannot remove the last category")
	// ErrKeyNotFound is returned by a Store for a key that was never written.
	ErrKeyNotFound = errors.New("key not found")
	// ErrNoSession is returned by App when no profile is signed in.
	ErrNoSession = errors.New("no active profile")
)
