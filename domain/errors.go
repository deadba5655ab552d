package domain

import "errors"

// Error taxonomy shared by services and handlers. Services wrap these with
// fmt.Errorf("...: %w", Err...) so handlers can map them with errors.Is.
var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrForbidden         = errors.New("access denied")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrConflict          = errors.New("conflict")
)
