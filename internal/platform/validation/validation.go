// Package validation is the single entry point for request schema checks.
//
// Schemas are tagged structs (one per operation) implementing Schema. String
// fields are trimmed before the rules run, unless tagged `trim:"-"`. Only the
// first violation is reported.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Schema is implemented by every request payload that can be validated.
type Schema interface {
	SchemaID() string
}

// Error describes the first violated rule of a schema.
type Error struct {
	Schema  string
	Field   string
	Rule    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// PhonePattern accepts regional numbers such as 050-1234567 or 03 123 4567.
var PhonePattern = regexp.MustCompile(`^0[0-9]{1,2}-?\s?[0-9]{3}\s?[0-9]{4}$`)

// CardPhonePattern accepts the bare 10 to 15 digit numbers printed on cards.
var CardPhonePattern = regexp.MustCompile(`^[0-9]{10,15}$`)

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return PhonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("card_phone", func(fl validator.FieldLevel) bool {
		return CardPhonePattern.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

var defaultValidator = sync.OnceValue(New)

// Validate trims payload, checks it against its tags and returns the trimmed
// copy. Callers must continue with the returned value.
func Validate[T Schema](payload T) (T, error) {
	return Check(defaultValidator(), payload)
}

// Check is Validate with an explicit validator.
func Check[T Schema](v *Validator, payload T) (T, error) {
	trimStrings(reflect.ValueOf(&payload).Elem())
	err := v.validate.Struct(payload)
	if err == nil {
		return payload, nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return payload, &Error{
			Schema:  payload.SchemaID(),
			Rule:    "schema",
			Message: err.Error(),
		}
	}

	first := fieldErrors[0]
	field := fieldPath(first.Namespace())
	return payload, &Error{
		Schema:  payload.SchemaID(),
		Field:   field,
		Rule:    first.Tag(),
		Message: describe(field, first),
	}
}

// Decode reads one JSON object into a schema, rejecting unknown fields, and
// validates it.
func Decode[T Schema](body io.Reader) (T, error) {
	payload, err := Parse[T](body)
	if err != nil {
		return payload, err
	}
	return Validate(payload)
}

// Parse is Decode without the rule check.
func Parse[T Schema](body io.Reader) (T, error) {
	var payload T
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&payload); err != nil {
		return payload, decodeError(payload.SchemaID(), err)
	}
	return payload, nil
}

func decodeError(schema string, err error) *Error {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.Is(err, io.EOF):
		return &Error{Schema: schema, Rule: "json", Message: "request body is required"}
	case errors.As(err, &typeErr):
		return &Error{
			Schema:  schema,
			Field:   typeErr.Field,
			Rule:    "type",
			Message: fmt.Sprintf("%q must be a %s", typeErr.Field, jsonKind(typeErr.Type)),
		}
	case errors.As(err, &syntaxErr):
		return &Error{Schema: schema, Rule: "json", Message: "request body must be valid JSON"}
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return &Error{
			Schema:  schema,
			Field:   field,
			Rule:    "unknown",
			Message: fmt.Sprintf("%q is not allowed", field),
		}
	default:
		return &Error{Schema: schema, Rule: "json", Message: "request body must be valid JSON"}
	}
}

// trimStrings walks exported fields, copying struct pointers before descending
// so the caller's nested values are left untouched.
func trimStrings(v reflect.Value) {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() || v.Elem().Kind() != reflect.Struct || !v.CanSet() {
			return
		}
		clone := reflect.New(v.Elem().Type())
		clone.Elem().Set(v.Elem())
		trimStrings(clone.Elem())
		v.Set(clone)
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() || field.Tag.Get("trim") == "-" {
				continue
			}
			trimStrings(v.Field(i))
		}
	case reflect.String:
		if v.CanSet() {
			v.SetString(strings.TrimSpace(v.String()))
		}
	}
}

func fieldPath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}

func describe(field string, fe validator.FieldError) string {
	numeric := isNumeric(fe.Kind())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "email":
		return fmt.Sprintf("%q must be a valid email", field)
	case "url", "http_url":
		return fmt.Sprintf("%q must be a valid uri", field)
	case "phone", "card_phone":
		return fmt.Sprintf("%q must be a valid phone number", field)
	case "min", "gte":
		if numeric {
			return fmt.Sprintf("%q must be greater than or equal to %s", field, fe.Param())
		}
		return fmt.Sprintf("%q length must be at least %s characters long", field, fe.Param())
	case "max", "lte":
		if numeric {
			return fmt.Sprintf("%q must be less than or equal to %s", field, fe.Param())
		}
		return fmt.Sprintf("%q length must be less than or equal to %s characters long", field, fe.Param())
	default:
		return fmt.Sprintf("%q failed on the %q rule", field, fe.Tag())
	}
}

func isNumeric(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	if isNumeric(t.Kind()) {
		return "number"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return t.Kind().String()
	}
}
