package errs

import (
	"errors"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrBookNotFound       = errors.New("book not found")
	ErrEmailExists        = errors.New("email already exists")
	ErrUserNameExists     = errors.New("username already exists")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError rejects a request before any business logic runs.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
