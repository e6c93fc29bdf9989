package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error so handlers can map it to a status code
// without inspecting messages.
type Kind string

const (
	KindValidation     Kind = "VALIDATION"
	KindNotFound       Kind = "NOT_FOUND"
	KindInvalidState   Kind = "INVALID_STATE"
	KindUnauthorized   Kind = "UNAUTHORIZED"
	KindInfrastructure Kind = "INFRASTRUCTURE"
)

// Error is the structured failure returned by the service layer.
// Details carries every offending item for batch validation (not just the first).
type Error struct {
	Kind    Kind
	Message string
	Details []string
	cause   error
}

func (e *Error) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s: %v", e.Message, e.Details)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func Validation(message string, details ...string) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidState(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...interface{}) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// Infrastructure wraps a persistence failure. The raw cause stays wrapped for
// logging but never crosses the API boundary.
func Infrastructure(cause error) *Error {
	return &Error{Kind: KindInfrastructure, Message: "internal storage error", cause: cause}
}

// KindOf extracts the Kind, defaulting to Infrastructure for unclassified errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInfrastructure
}

// DetailsOf returns the detail list if err is a structured Error.
func DetailsOf(err error) []string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Details
	}
	return nil
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
