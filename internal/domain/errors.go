package domain

import "errors"

// Error kinds surfaced to API callers. Match them with errors.Is.
var (
	ErrValidation = errors.New("validation error") // Missing or malformed input (400)
	ErrConflict   = errors.New("conflict")         // Duplicate username or email (409)
	ErrAuth       = errors.New("unauthorized")     // Bad credentials or token (401)
	ErrNotFound   = errors.New("not found")        // Unknown goal id (404)
)

// Error carries a caller-facing message together with its kind
type Error struct {
	Kind    error  // One of the Err* kinds above
	Message string // Message returned to the client as {message}
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// NewError builds an Error of the given kind
func NewError(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Message returns the caller-facing message of err, or fallback when err is not an *Error
func Message(err error, fallback string) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return fallback
}
