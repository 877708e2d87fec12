package validation

import (
	"github.com/go-playground/validator/v10"
)

const (
	MessageInvalidBody    = "El cuerpo de la petición no es un JSON válido"
	MessageActivoBoolean  = "El campo activo debe ser un valor booleano"
	messageNombreLength   = "El nombre debe tener entre 2 y 100 caracteres"
	messagePasswordLength = "La contraseña debe tener al menos 6 caracteres"
)

// catalog holds the user-facing message for each field.tag pair.
var catalog = map[string]string{
	"nombre.required":   "El nombre es requerido",
	"nombre.min":        messageNombreLength,
	"nombre.max":        messageNombreLength,
	"email.required":    "El email es requerido",
	"email.email":       "Debe ser un email válido",
	"email.max":         "El email no puede superar 255 caracteres",
	"password.required": "La contraseña es requerida",
	"password.min":      messagePasswordLength,
	"password.maxbytes": "La contraseña no puede superar 72 bytes",
	"activo.boolean":    MessageActivoBoolean,
}

// Message returns the Spanish message for fe. Pairs missing from the
// catalog use the validator's Spanish translation.
func Message(fe validator.FieldError) string {
	if msg, ok := catalog[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return fe.Translate(translator)
}
