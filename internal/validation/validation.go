// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields or email formats) defined in struct tags
// and extracts validation errors into a format the client can
// understand
package validation

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/usuarios-api/internal/errs"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Validate returns validator.ValidationErrors, CustomValidationErrors or nil.
type Validatable interface {
	Validate() error
}

// Normalizer is implemented by payloads that canonicalize their fields.
// Normalize runs only after Validate succeeds.
type Normalizer interface {
	Normalize()
}

// CustomValidationError represents a single validation issue for a specific field.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// Err returns c as an error, or nil when it is empty.
func (c CustomValidationErrors) Err() error {
	if len(c) == 0 {
		return nil
	}
	return c
}

// BindAndValidate binds path params and the JSON body into payload, then
// validates and normalizes it.
//
// Every failure is a 400 "Errores de validación". A body that cannot be
// decoded yields a single error for the "body" field.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.ValidationError([]errs.FieldError{{
			Field:   "body",
			Message: bindMessage(err),
		}})
	}

	if err := payload.Validate(); err != nil {
		return errs.ValidationError(extractValidationError(err))
	}

	if n, ok := payload.(Normalizer); ok {
		n.Normalize()
	}

	return nil
}

// bindMessage names the offending field or offset of a binding failure.
// Decoder text is never echoed since it carries Go type names.
func bindMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("%s: tipo inválido en el campo %s", MessageInvalidBody, typeErr.Field)
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Sprintf("%s: error de sintaxis en la posición %d", MessageInvalidBody, syntaxErr.Offset)
	}

	return MessageInvalidBody
}

// extractValidationError converts err into field errors, keeping the
// order in which fields are declared.
func extractValidationError(err error) []errs.FieldError {
	var fieldErrors []errs.FieldError

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fe := range validationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field:   fe.Field(),
				Message: Message(fe),
			})
		}
		return fieldErrors
	}

	var customErrors CustomValidationErrors
	if errors.As(err, &customErrors) {
		for _, ce := range customErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field:   ce.Field,
				Message: ce.Message,
			})
		}
		return fieldErrors
	}

	return []errs.FieldError{{Field: "body", Message: err.Error()}}
}
