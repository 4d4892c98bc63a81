package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// Configuration errors
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrMissingRequired  = errors.New("missing required field")
	ErrInvalidSnowflake = errors.New("invalid Discord snowflake")

	// Mapping errors
	ErrMappingNotFound = errors.New("mapping file not found")
	ErrMappingInvalid  = errors.New("invalid mapping file")

	// API errors
	ErrAPIConnection = errors.New("API connection failed")
	ErrRoleRejected  = errors.New("role assignment rejected")
)

// Wrap wraps an error with additional context
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is checks if the error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Join combines errors, dropping nils
func Join(errs ...error) error {
	return errors.Join(errs...)
}
