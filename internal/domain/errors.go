package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound covers both a missing row and a row owned by someone else, so
// responses never reveal which of the two it was.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when an authenticated caller lacks the admin role
// for catalog mutation. Catalog rows are globally visible, so this is
// deliberately distinct from ErrNotFound.
var ErrForbidden = errors.New("forbidden")

// ValidationError rejects a request with a message tied to a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// AsValidation unwraps a ValidationError if err carries one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
