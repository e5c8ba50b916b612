package apperr

import "errors"

// Sentinel errors for the failure taxonomy shared by all use cases.
// Handlers map these to HTTP status codes with errors.Is; wrapping with
// fmt.Errorf("...: %w", Err...) keeps the category while adding context.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("not authorized")
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUpstream     = errors.New("upstream failure")
)
