package transport

import (
	"regexp"
	"strings"

	"oratoria_backend/platform/validator"

	govalidator "github.com/go-playground/validator/v10"
)

// uzPhonePattern matches Uzbek mobile numbers in strict international
// format: +998 followed by exactly nine digits, no separators.
var uzPhonePattern = regexp.MustCompile(`^\+998\d{9}$`)

// RegisterPhoneRule registers the uzphone validation tag used by
// SubmitLeadRequest. Must be called once during startup.
func RegisterPhoneRule(val *validator.Validator) error {
	return val.RegisterValidation("uzphone", func(fl govalidator.FieldLevel) bool {
		return uzPhonePattern.MatchString(fl.Field().String())
	})
}

func trim(s string) string {
	return strings.TrimSpace(s)
}

// FieldErrors converts validator errors to the public field-error list.
// Every invalid field is reported, not just the first one.
func FieldErrors(err error) []FieldError {
	verrs, ok := err.(govalidator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "body", Message: "invalid request body"}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

func fieldMessage(fe govalidator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "uzphone":
		return "must be an Uzbek phone number in the format +998XXXXXXXXX"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "is invalid"
	}
}
