package errors

import (
	"errors"
	"fmt"
)

// Common error types for the barbershop client
var (
	// Session errors
	ErrInvalidSession  = errors.New("invalid session")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrEmailTaken         = errors.New("email already registered")

	// Navigation errors
	ErrRouteNotFound  = errors.New("route not found")
	ErrMissingParam   = errors.New("missing route parameter")
	ErrNavigationLoop = errors.New("navigation redirect loop")

	// Storage errors
	ErrCorruptStorage = errors.New("corrupt storage")

	// General errors
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New is errors.New, re-exported so callers need a single errors import
func New(text string) error {
	return errors.New(text)
}
