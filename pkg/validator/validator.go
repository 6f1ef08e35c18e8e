package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one failed rule. Field is the JSON path of the offending value,
// for example "abilities[1]".
type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param,omitempty"`
}

// Message renders the failure as a sentence suitable for API clients.
func (f FieldError) Message() string {
	field := strings.ReplaceAll(strings.ToLower(f.Field), "_", " ")
	if field == "" {
		field = "field"
	}
	switch f.Tag {
	case "required":
		return field + " is required"
	case "nonblank":
		return field + " must not be empty"
	case "min":
		return fmt.Sprintf("%s must contain at least %s item(s)", field, f.Param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, f.Param)
	}
	if f.Param != "" {
		return fmt.Sprintf("%s failed validation: %s=%s", field, f.Tag, f.Param)
	}
	return fmt.Sprintf("%s failed validation: %s", field, f.Tag)
}

// ValidationErrors is returned by Struct when at least one rule fails.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(v))
	for i, failure := range v {
		messages[i] = failure.Message()
	}
	return strings.Join(messages, "; ")
}

var engine = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	if err := v.RegisterValidation("nonblank", nonBlank); err != nil {
		panic(fmt.Sprintf("validator: register nonblank: %v", err))
	}
	return v
})

// Struct runs the validate tags of s. Rule failures come back as ValidationErrors; any
// other error (such as a non-struct argument) is returned unchanged.
func Struct(s any) error {
	err := engine().Struct(s)
	var failures validator.ValidationErrors
	if !errors.As(err, &failures) {
		return err
	}
	out := make(ValidationErrors, len(failures))
	for i, fe := range failures {
		out[i] = FieldError{Field: fieldPath(fe.Namespace()), Tag: fe.Tag(), Param: fe.Param()}
	}
	return out
}

// RegisterValidation adds a custom rule to the shared engine.
func RegisterValidation(tag string, fn validator.Func) error {
	return engine().RegisterValidation(tag, fn)
}

func nonBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	return field.Kind() == reflect.String && strings.TrimSpace(field.String()) != ""
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}
