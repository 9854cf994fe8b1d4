package domain

import "errors"

// Core error taxonomy. Every transition fails before mutating anything:
// callers either get a new snapshot or one of these, never both.
var (
	ErrPermissionDenied  = errors.New("permission denied")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("resource not found")
)
