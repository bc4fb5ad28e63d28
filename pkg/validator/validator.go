package validator

import (
	"fmt"
	"strings"

	"github.com/foc-sab/ctrlroom/pkg/apperror"
	"github.com/go-playground/validator/v10"
)

// ToValidationError converts a gin binding error into the field-level
// apperror.ValidationError shape. Non-validator errors map to a single
// "request" field.
func ToValidationError(err error) *apperror.ValidationError {
	fields := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			field := jsonFieldName(fieldError.Field())
			fields[field] = getFieldErrorMessage(fieldError)
		}
	} else {
		fields["request"] = err.Error()
	}

	return &apperror.ValidationError{Fields: fields}
}

func FormatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, fieldError := range validationErrors {
			messages = append(messages, getFieldErrorMessage(fieldError))
		}
		return strings.Join(messages, "; ")
	}
	return err.Error()
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := jsonFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s does not match", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date in %s format", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// jsonFieldName lowers Go struct field names to their snake_case JSON keys.
func jsonFieldName(field string) string {
	fieldNames := map[string]string{
		"Name":                 "name",
		"Email":                "email",
		"Password":             "password",
		"PasswordConfirmation": "password_confirmation",
		"Token":                "token",
		"Phone":                "phone",
		"Location":             "location",
		"Bio":                  "bio",
		"SystemStatus":         "system_status",
		"Complaints":           "complaints",
		"AssetTag":             "asset_tag",
		"OS":                   "os",
		"Processor":            "processor",
		"RAM":                  "ram",
		"Storage":              "storage",
		"GraphicsCard":         "graphics_card",
		"Motherboard":          "motherboard",
		"Version":              "version",
		"Category":             "category",
		"Vendor":               "vendor",
		"Description":          "description",
		"InstallDate":          "install_date",
		"IsLicensed":           "is_licensed",
		"Text":                 "text",
		"Status":               "status",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return strings.ToLower(field)
}
