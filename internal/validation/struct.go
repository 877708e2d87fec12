package validation

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	estranslations "github.com/go-playground/validator/v10/translations/es"
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Field() reports the JSON name so error fields match the request keys.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// maxbytes bounds the encoded length. bcrypt rejects inputs over 72 bytes.
	if err := validate.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	}); err != nil {
		panic(err)
	}

	locale := es.New()
	translator, _ = ut.New(locale, locale).GetTranslator("es")
	if err := estranslations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(err)
	}
}

// Struct runs the tag rules of v. At most one error is reported per
// field, in declared order.
func Struct(v any) error {
	return validate.Struct(v)
}

// Fields is Struct with the result already translated, so callers can
// append their own checks before returning.
func Fields(v any) CustomValidationErrors {
	err := Struct(v)
	if err == nil {
		return nil
	}

	fieldErrors := extractValidationError(err)

	out := make(CustomValidationErrors, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		out = append(out, CustomValidationError{Field: fe.Field, Message: fe.Message})
	}
	return out
}
