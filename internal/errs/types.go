package errs

import (
	"net/http"
)

// Messages shared by every endpoint.
const (
	MessageValidation    = "Errores de validación"
	MessageInternal      = "Error interno del servidor"
	MessageRouteNotFound = "Ruta no encontrada"
)

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// code is optional (nil defaults to "BAD_REQUEST"). errors carries
// field-level validation failures.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewInternalServerError creates a 500 HTTPError wrapping cause.
//
// The message is always the generic one. cause is logged server-side
// and its text is reported in the envelope's "error" field.
func NewInternalServerError(cause error) *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message:  MessageInternal,
		Status:   http.StatusInternalServerError,
		Override: false,
		Cause:    cause,
	}
}

// ValidationError converts a list of field errors into a 400 HTTPError.
func ValidationError(fieldErrors []FieldError) *HTTPError {
	code := "VALIDATION_FAILED"
	return NewBadRequestError(MessageValidation, true, &code, fieldErrors)
}
