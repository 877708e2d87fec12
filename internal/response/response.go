// Package response defines the JSON envelope shared by every endpoint.
package response

import (
	"errors"
	"net/http"

	"github.com/deppfellow/usuarios-api/internal/errs"
)

// Envelope is the uniform wrapper returned by every endpoint.
//
// Data and Total are set on success only, Errors on validation failures
// only, and Error on internal errors only.
type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    any               `json:"data,omitempty"`
	Total   *int              `json:"total,omitempty"`
	Errors  []errs.FieldError `json:"errors,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// OK wraps a successful payload.
func OK(message string, data any) *Envelope {
	return &Envelope{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// List wraps a collection and reports its size in Total.
func List[T any](message string, items []T) *Envelope {
	if items == nil {
		items = []T{}
	}
	total := len(items)

	return &Envelope{
		Success: true,
		Message: message,
		Data:    items,
		Total:   &total,
	}
}

// Fail builds the envelope for an HTTPError. It returns the envelope and
// the status to write.
func Fail(err *errs.HTTPError) (int, *Envelope) {
	env := &Envelope{
		Success: false,
		Message: err.Message,
		Errors:  err.Errors,
	}

	if err.Status >= http.StatusInternalServerError {
		if err.Cause != nil {
			env.Error = err.Cause.Error()
		} else {
			env.Error = http.StatusText(err.Status)
		}
	}

	return err.Status, env
}

// FromError is Fail for any error. Errors that are not *errs.HTTPError
// become a 500.
func FromError(err error) (int, *Envelope) {
	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		httpErr = errs.NewInternalServerError(err)
	}
	return Fail(httpErr)
}
