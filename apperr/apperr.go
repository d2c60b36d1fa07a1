// Package apperr defines the error categories handlers translate to HTTP
// status codes: validation (422), unauthorized (401), not found (404) and
// store failures (500, retryable).
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrStore        = errors.New("store unavailable")
)

// Validation wraps a shape or parameter problem. No store call has been made
// when one of these is returned.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// NotFound marks a lookup that matched no document.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}

// Store wraps a failed or timed-out store round trip. Callers may retry
// idempotent reads; writes are never retried here.
func Store(err error) error {
	return fmt.Errorf("%w: %v", ErrStore, err)
}

func IsValidation(err error) bool   { return errors.Is(err, ErrValidation) }
func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }
func IsNotFound(err error) bool     { return errors.Is(err, ErrNotFound) }
