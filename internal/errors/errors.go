package errors

import (
	"errors"
	"fmt"
)

// Common error types for the invoice client
var (
	// Form errors
	ErrValidation      = errors.New("validation failed")
	ErrIncompleteDraft = errors.New("name, price and quantity are required")

	// Session errors
	ErrNoToken            = errors.New("no session token")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// API errors
	ErrTransport    = errors.New("transport error")
	ErrEmptyInvoice = errors.New("empty invoice payload")
	ErrBadResponse  = errors.New("unexpected response")
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
