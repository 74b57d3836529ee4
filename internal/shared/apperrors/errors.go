package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error taxonomy shared by every collection service. Handlers map these to
// HTTP statuses in exactly one place (HTTPStatus), so projects, experience
// and skills cannot drift apart in how they report the same failure.

var (
	// ErrUnauthorized is returned by a mutating operation invoked without a
	// valid session. It is expected control flow, not a crash.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned when an operation targets an id that does not
	// exist in its collection.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned for missing or malformed required input.
	ErrValidation = errors.New("validation failed")

	// ErrStorage wraps any failure of the underlying document store or
	// object storage. Services never swallow it.
	ErrStorage = errors.New("storage failure")
)

// Validation wraps ErrValidation with a field-level message.
func Validation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound wraps ErrNotFound with the resource and id that were missed.
func NotFound(resource, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, resource, id)
}

// Storage wraps a store-level error so callers can match ErrStorage while
// the original cause stays on the chain.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}

// HTTPStatus maps a domain error to the status code handlers must return.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Code returns the machine-readable error code for the response envelope.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrValidation):
		return "VALIDATION_ERROR"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	default:
		return "STORAGE_ERROR"
	}
}
