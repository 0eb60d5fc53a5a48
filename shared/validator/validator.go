package validator

import (
	"courtbook/shared/failure"
	"courtbook/shared/timezone"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

// registerHourlyValidation accepts "HH:MM" values that fall exactly on the hour.
func registerHourlyValidation(field val.FieldLevel) bool {
	str, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	clock, err := time.Parse(timezone.ClockLayout, str)
	if err != nil {
		return false
	}

	return clock.Minute() == 0
}

func registerDateValidation(field val.FieldLevel) bool {
	str, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := timezone.ParseDate(str)

	return err == nil
}

// jsonName reports fields under the name clients send them with.
func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	if name == "" {
		return field.Name
	}

	return name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonName)

	for tag, fn := range map[string]val.Func{
		"hourly": registerHourlyValidation,
		"date":   registerDateValidation,
	} {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

// ValidateOptional is Validate for bodies that may be left out. An empty body, chunked
// or not, validates the zero value of T.
func ValidateOptional[T any](r io.Reader, data *T) error {
	if r == nil {
		return ValidateStruct(data)
	}

	if err := json.NewDecoder(r).Decode(data); err != nil && !errors.Is(err, io.EOF) {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err, "")) //nolint:wrapcheck
	}

	return nil
}

// ValidateVar checks a lone value, such as a query parameter, against tag.
func ValidateVar(value any, tag string) error {
	return ValidateParam("value", value, tag)
}

// ValidateParam is ValidateVar naming the parameter in the message.
func ValidateParam(name string, value any, tag string) error {
	if err := validate.Var(value, tag); err != nil {
		return failure.BadRequestFromString(message(err, name)) //nolint:wrapcheck
	}

	return nil
}
