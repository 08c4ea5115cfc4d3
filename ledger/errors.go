package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned for unknown ids.
	ErrNotFound = errors.New("not found")
	// ErrAccountNotFound is returned when a transaction names an account
	// that does not exist. It matches ErrNotFound with errors.Is.
	ErrAccountNotFound = fmt.Errorf("account %w", ErrNotFound)
	// ErrConflict is returned when an update carries a stale version.
	// Callers should re-fetch and retry.
	ErrConflict = errors.New("version conflict")
	// ErrInvalidID is returned when an id is malformed for the backing store.
	ErrInvalidID = &ValidationError{Field: "id", Reason: "malformed id"}
)

// ValidationError reports a caller mistake in a request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

// Invalid builds a ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NotFound wraps ErrNotFound with the entity kind and id.
func NotFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
