package apperror

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	// account_number, accountNumber -> Account Number
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' && i > 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	s = strings.ReplaceAll(b.String(), "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError turns binding errors into a field-level ValidationError.
// Field names are the json names thanks to the tag func registered in Init.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return ErrInvalidInput
	}

	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		fieldName := e.Field()
		if _, seen := fields[fieldName]; seen {
			continue
		}
		humanReadableField := formatFieldName(fieldName)

		switch e.Tag() {
		case "required":
			fields[fieldName] = RequiredField(humanReadableField).Message
		case "account_number":
			fields[fieldName] = humanReadableField + " must be exactly 10 digits"
		case "len":
			fields[fieldName] = humanReadableField + " must be exactly " + e.Param() + " characters"
		default:
			fields[fieldName] = InvalidField(humanReadableField).Message
		}
	}

	return NewValidationError(fields)
}
