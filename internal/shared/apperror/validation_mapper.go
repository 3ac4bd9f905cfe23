package apperror

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// recipient_phone -> Recipient Phone
func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]
		field := formatFieldName(e.Field())

		switch e.Tag() {
		case "required":
			return RequiredField(field)
		case "oneof":
			return Validation(fmt.Sprintf("%s must be one of [%s]", field, e.Param()))
		case "min", "gte", "gt":
			return Validation(fmt.Sprintf("%s is below the allowed minimum", field))
		case "max", "lte", "lt":
			return Validation(fmt.Sprintf("%s is above the allowed maximum", field))
		case "date":
			return Validation(fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field))
		case "clock":
			return Validation(fmt.Sprintf("%s must be a time in HH:MM format", field))
		default:
			return InvalidField(field)
		}
	}

	return Validation("Invalid input")
}
