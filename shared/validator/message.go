package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required": "{field} is required",
	"gte":      "{field} must be greater than or equal to {param}",
	"lte":      "{field} must be less than or equal to {param}",
	"oneof":    "{field} must be one of {param}",
	"max":      "{field} must be at most {param}",
	"min":      "{field} must be at least {param}",
	"number":   "{field} must be a number",
	"boolean":  "{field} must be a boolean",
	"uuid":     "{field} must be a valid uuid",
	"hourly":   "{field} must be a time on the hour (HH:00)",
	"date":     "{field} must be a date in YYYY-MM-DD format",
	"unique":   "{field} must not contain duplicates",
	"dive":     "{field} contains an invalid value",
}

// sizedUnits qualifies min and max for lengths.
var sizedUnits = map[string]string{
	"slice":  " item(s)",
	"array":  " item(s)",
	"string": " character(s)",
}

// message renders every violation, in field order, joined by "; ".
func message(err error, field string) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	out := make([]string, 0, len(valErrors))

	for _, valErr := range valErrors {
		name := valErr.Field()
		if name == "" {
			name = field
		}

		out = append(out, describe(valErr, name))
	}

	return strings.Join(out, "; ")
}

func describe(valErr val.FieldError, name string) string {
	template, ok := messages[valErr.Tag()]
	if !ok {
		return name + " is invalid (" + valErr.Tag() + ")"
	}

	param := valErr.Param()
	if tag := valErr.Tag(); tag == "min" || tag == "max" {
		param += sizedUnits[valErr.Kind().String()]
	}

	return strings.NewReplacer("{field}", name, "{param}", param).Replace(template)
}
