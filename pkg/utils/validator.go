package utils

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// RequestField keys a failure that belongs to the whole request, not one field
const RequestField = "Request"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// string fields made only of whitespace count as blank
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// ValidateStruct returns field name to message, or nil when data is valid
func ValidateStruct(data any) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// not a struct, or a tag the validator cannot run: never let it pass
		errors[RequestField] = "could not be validated"
		return errors
	}
	for _, err := range validationErrors {
		errors[err.Field()] = getSimpleErrorMessage(err)
	}

	return errors
}

func getSimpleErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required", "notblank":
		return "must not be blank"
	case "email":
		return "must be a well-formed email address"
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", err.Param())
	default:
		return fmt.Sprintf("invalid %s field", err.Field())
	}
}

// FormatValidationErrors joins the messages in field order so output is stable
func FormatValidationErrors(errors map[string]string) string {
	fields := make([]string, 0, len(errors))
	for field := range errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, errors[field]))
	}
	return strings.Join(msgs, "; ")
}
