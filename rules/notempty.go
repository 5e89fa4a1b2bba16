package rules

import (
	"reflect"
	"strings"

	"github.com/lithictech/go-assay/check"
)

const (
	IsEmpty         = "isEmpty"
	NotEmptyInvalid = "notEmptyInvalid"
)

var NotEmptyTemplates = check.Templates{
	IsEmpty:         "Value is required and can't be empty",
	NotEmptyInvalid: "Invalid type given. String, integer, float, boolean or array expected",
}

type NotEmptyOptions struct {
	// AllowZeroFloat treats 0.0 as a value, rather than as empty.
	AllowZeroFloat bool              `option:"allow_zero_float"`
	Messages       map[string]string `option:"messages"`
}

// NotEmpty fails nil, empty and whitespace-only strings, false,
// a zero float, and empty slices, arrays and maps.
// Integers, including 0, are never empty.
type NotEmpty struct {
	opts      NotEmptyOptions
	templates check.Templates
}

func NewNotEmpty(opts NotEmptyOptions) (*NotEmpty, error) {
	t, err := NotEmptyTemplates.With(opts.Messages)
	if err != nil {
		return nil, err
	}
	return &NotEmpty{opts: opts, templates: t}, nil
}

func (v *NotEmpty) Validate(value interface{}, _ check.Context) check.Outcome {
	empty, ok := v.isEmpty(value)
	if !ok {
		return v.templates.Fail(NotEmptyInvalid)
	}
	if empty {
		return v.templates.Fail(IsEmpty)
	}
	return check.Valid()
}

// isEmpty returns whether value is empty, and false if the type is unsupported.
func (v *NotEmpty) isEmpty(value interface{}) (bool, bool) {
	if value == nil {
		return true, true
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return true, true
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.String:
		return strings.TrimSpace(rv.String()) == "", true
	case reflect.Bool:
		return !rv.Bool(), true
	case reflect.Float32, reflect.Float64:
		return !v.opts.AllowZeroFloat && rv.Float() == 0, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return false, true
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0, true
	case reflect.Struct:
		return false, true
	default:
		return false, false
	}
}
