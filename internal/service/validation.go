package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	appErrors "github.com/noah-isme/eschool-portal/pkg/errors"
)

// NewValidator returns a validator reporting JSON field names and understanding notblank.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterTagNameFunc(jsonName)
	return v
}

func jsonName(field reflect.StructField) string {
	name := strings.Split(field.Tag.Get("json"), ",")[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// validateFields validates record and maps failures to "<Label> is required" style messages
// keyed by JSON field name. It returns nil when the record is valid.
func validateFields(v *validator.Validate, record interface{}) *appErrors.Error {
	err := v.Struct(record)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}

	typ := reflect.TypeOf(record)
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		key := fe.Field()
		if _, seen := fields[key]; seen {
			continue
		}
		fields[key] = fieldMessage(fe, labelOf(typ, fe.StructField(), key))
	}
	return appErrors.Validation(fields)
}

func labelOf(typ reflect.Type, structField, jsonKey string) string {
	if typ.Kind() == reflect.Struct {
		if f, ok := typ.FieldByName(structField); ok {
			if label := f.Tag.Get("label"); label != "" {
				return label
			}
		}
	}
	return humanize(jsonKey)
}

func humanize(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '-' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func fieldMessage(fe validator.FieldError, label string) string {
	switch fe.Tag() {
	case "required", "notblank":
		return label + " is required"
	case "min":
		if k := fe.Kind(); k == reflect.Slice || k == reflect.Map || k == reflect.String {
			return label + " is required"
		}
		return label + " must be at least " + fe.Param()
	case "max":
		return label + " must be at most " + fe.Param()
	case "gte":
		return label + " cannot be negative"
	case "gt":
		return label + " must be greater than " + fe.Param()
	case "email":
		return label + " must be a valid email address"
	case "oneof":
		return label + " must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	default:
		return label + " is invalid"
	}
}
