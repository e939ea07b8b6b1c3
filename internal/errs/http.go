package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "date_from", "error": "must be a date in YYYY-MM-DD format" }
type FieldError struct {
	// Field is the query parameter or body key the error relates to.
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the custom error type for API responses.
//
// Only Detail and Errors reach the client:
//
//	{ "detail": "date_from must be <= date_to" }
//
// Status and Code drive the response status and the structured logs.
type HTTPError struct {
	Code   string `json:"-"`
	Detail string `json:"detail"`
	Status int    `json:"-"`

	// Errors holds field-level validation errors, typically for query parameters.
	Errors []FieldError `json:"errors,omitempty"`

	// Cause is the failure behind the response. Logged, never serialized.
	Cause error `json:"-"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	return e.Detail
}

// Is reports whether target is also an *HTTPError.
//
// It does not compare Code or Status, only the type.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// Unwrap exposes Cause to errors.Is and errors.As.
func (e *HTTPError) Unwrap() error {
	return e.Cause
}

// WithCause returns a copy of this HTTPError that wraps cause.
func (e *HTTPError) WithCause(cause error) *HTTPError {
	cp := *e
	cp.Cause = cause
	return &cp
}

// WithDetail returns a copy of this HTTPError with Detail replaced.
func (e *HTTPError) WithDetail(detail string) *HTTPError {
	return &HTTPError{
		Code:   e.Code,
		Detail: detail,
		Status: e.Status,
		Errors: e.Errors,
		Cause:  e.Cause,
	}
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
