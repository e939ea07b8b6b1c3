package errs

import (
	"net/http"
)

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// This supports extra payload:
//   - code: optional custom code string (if nil, defaults to "BAD_REQUEST")
//   - errors: optional slice of field errors (validation errors)
func NewBadRequestError(detail string, code *string, errors []FieldError) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))

	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:   formattedCode,
		Detail: detail,
		Status: http.StatusBadRequest,
		Errors: errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(detail string, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))

	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:   formattedCode,
		Detail: detail,
		Status: http.StatusNotFound,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// An empty detail falls back to the generic status text. Callers that pass the
// underlying failure message expose it to the client verbatim.
func NewInternalServerError(detail string) *HTTPError {
	if detail == "" {
		detail = http.StatusText(http.StatusInternalServerError)
	}

	return &HTTPError{
		Code:   MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Detail: detail,
		Status: http.StatusInternalServerError,
	}
}

// ValidationError converts a generic validation error into a 400 Bad Request HTTPError.
func ValidationError(err error) *HTTPError {
	return NewBadRequestError(err.Error(), nil, nil)
}
