package errors

import (
	"errors"
	"fmt"
)

// Common error types for the docadmin client
var (
	// Session errors
	ErrSessionExpired   = errors.New("session expired")
	ErrNoRefreshToken   = errors.New("no refresh token")
	ErrNotAuthenticated = errors.New("not authenticated")

	// Backend status errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")

	// Transport errors
	ErrTransport       = errors.New("transport failure")
	ErrInvalidResponse = errors.New("invalid response")

	// Client-side errors
	ErrValidation = errors.New("validation failed")
	ErrStorage    = errors.New("storage failure")
	ErrConfig     = errors.New("invalid configuration")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Required returns a validation error naming the missing field
func Required(field string) error {
	return fmt.Errorf("%s is required: %w", field, ErrValidation)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
