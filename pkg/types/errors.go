package types

import "errors"

// Record access errors.
var (
	// ErrUnsupportedTable is a programming error: the table has no entry in
	// the registry.
	ErrUnsupportedTable = errors.New("unsupported table")
	// ErrArity is a programming error: the wrong number of values was given.
	ErrArity = errors.New("wrong number of values")
	// ErrNotFound is returned when a single-row select matches nothing.
	ErrNotFound = errors.New("record not found")
	// ErrConstraintViolation wraps foreign-key and uniqueness failures.
	ErrConstraintViolation = errors.New("constraint violation")
)

// Store lifecycle errors.
var (
	ErrPathRequired = errors.New("store path must not be empty")
	ErrStaleHandle  = errors.New("store handle is no longer usable")
)

// Entry errors.
var (
	ErrInvalidQuantity  = errors.New("quantity must be an integer")
	ErrInvalidMealIndex = errors.New("meal index out of range")
)
