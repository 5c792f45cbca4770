package engine

import "errors"

// Build errors
var (
	ErrMissingField  = errors.New("missing required field")
	ErrDuplicateKind = errors.New("duplicate kind")
	ErrNilValue      = errors.New("nil value")
)

// Lookup errors
var (
	ErrComponentNotFound = errors.New("component not found")
	ErrUnknownHandle     = errors.New("unknown handle")
)

// ErrAlreadyAttached is returned when an object is attached twice or after removal
var ErrAlreadyAttached = errors.New("object already attached")

// ErrDuplicateHandler is returned when a tag pair already has a handler of that phase
var ErrDuplicateHandler = errors.New("duplicate collision handler")
