package validation

import (
	"errors"
	Error "hoa/packages/common/errors"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Pretty close to RFC 5322 solution,
// but it's still not providing full features (like comments)
// and most likely will not handle all edge cases perfectly.
// But in this case, that's enough.
var emailPattern = regexp.MustCompile(`(?i)^(?:[a-z0-9!#$%&'*+/=?^_\x60{|}~-]+(?:\.[a-z0-9!#$%&'*+/=?^_\x60{|}~-]+)*|"(?:[\x01-\x08\x0b\x0c\x0e-\x1f\x21\x23-\x5b\x5d-\x7f]|\\[\x01-\x09\x0b\x0c\x0e-\x7f])*")@(?:(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)+[a-z0-9](?:[a-z0-9-]*[a-z0-9])?|\[(?:(?:(2(5[0-5]|[0-4][0-9])|1[0-9][0-9]|[1-9]?[0-9]))\.){3}(?:(2(5[0-5]|[0-4][0-9])|1[0-9][0-9]|[1-9]?[0-9])|[a-z0-9-]*[a-z0-9]:(?:[\x01-\x08\x0b\x0c\x0e-\x1f\x21-\x5a\x53-\x7f]|\\[\x01-\x09\x0b\x0c\x0e-\x7f])+)\])$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names of fields, since that's what client has sent
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("rfc5322", func(fl validator.FieldLevel) bool {
		return Email(fl.Field().String()) == nil
	})

	return v
}

func Email(email string) *Error.Validation {
	if strings.ReplaceAll(email, " ", "") == "" {
		return Error.NoValue
	}
	if !emailPattern.MatchString(email) {
		return Error.InvalidValue
	}
	return nil
}

// Validates struct by its "validate" tags.
// Returns 400 Bad Request status which describes the first invalid field.
func Struct(v any) *Error.Status {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return Error.StatusInternalError
	}

	return Error.NewStatusError(describe(errs[0]), http.StatusBadRequest)
}

func describe(e validator.FieldError) string {
	field := e.Field()

	switch e.Tag() {
	case "required":
		return "Field '" + field + "' is required"
	case "max":
		return "Field '" + field + "' is too long (max " + e.Param() + ")"
	case "min":
		return "Field '" + field + "' is too short (min " + e.Param() + ")"
	case "rfc5322", "email":
		return "Field '" + field + "' must be a valid E-Mail"
	}

	return "Field '" + field + "' is invalid (" + e.Tag() + ")"
}
