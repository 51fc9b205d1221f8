// Package apperr provides structured application errors with machine-readable
// codes. The HTTP layer translates codes into status codes; everything else
// stays transport-agnostic.
package apperr

// Code is a machine-readable error code.
type Code string

const (
	// CodeValidation covers missing or malformed required input.
	CodeValidation Code = "VALIDATION"
	// CodeUnauthorized covers missing/expired/invalid tokens and bad credentials.
	CodeUnauthorized Code = "UNAUTHORIZED"
	// CodeNotFound covers entities that are absent or not owned by the caller.
	CodeNotFound Code = "NOT_FOUND"
	// CodeConflict covers duplicate username/email at registration.
	CodeConflict Code = "CONFLICT"
)

// Error is the application error type.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates an error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates an error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}
