// internal/services/errors.go
package services

import "errors"

// Sentinel errors the handlers map to HTTP statuses. Services wrap them
// with context, e.g. fmt.Errorf("category %w", ErrAlreadyExists).
var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
