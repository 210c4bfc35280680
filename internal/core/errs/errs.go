// Package errs holds the error kinds shared by the use cases. The HTTP
// adapter maps each kind to a status code; the message is what the client sees.
package errs

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermission         = errors.New("permission denied")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
)

// Error is a classified failure with a client-facing message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func Validation(msg string) error { return &Error{Kind: ErrValidation, Message: msg} }

func InvalidCredentials(msg string) error {
	return &Error{Kind: ErrInvalidCredentials, Message: msg}
}

func Permission(msg string) error { return &Error{Kind: ErrPermission, Message: msg} }

func NotFound(msg string) error { return &Error{Kind: ErrNotFound, Message: msg} }

func Conflict(msg string) error { return &Error{Kind: ErrConflict, Message: msg} }

// Message returns the client message of a classified error and false otherwise.
func Message(err error) (string, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Message, true
	}
	return "", false
}
