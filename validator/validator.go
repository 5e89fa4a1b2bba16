package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithictech/go-assay/barcode"
	"github.com/rgalanakis/validator"
)

// ErrorMap holds the errors from validating a struct, by field name.
type ErrorMap map[string]ErrorArray

// Error renders every field's errors, sorted by field name.
func (err ErrorMap) Error() string {
	fields := make([]string, 0, len(err))
	for k := range err {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	lines := make([]string, 0, len(err))
	for _, k := range fields {
		lines = append(lines, fmt.Sprintf("%s: %s", k, err[k].Error()))
	}
	return strings.Join(lines, " | ")
}

// Messages returns the error text for each field.
func (err ErrorMap) Messages() map[string][]string {
	result := make(map[string][]string, len(err))
	for k, errs := range err {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		result[k] = msgs
	}
	return result
}

// ErrorArray is the errors for a single field.
type ErrorArray []error

func (err ErrorArray) Error() string {
	errs := make([]string, 0, len(err))
	for _, e := range err {
		errs = append(errs, e.Error())
	}
	return strings.Join(errs, ", ")
}

// Registry holds the validation functions for `validate` tags.
// Most callers should use the package-level Validate;
// a Registry is useful for a custom symbology catalog, or for tests.
type Registry struct {
	validator   *validator.Validator
	symbologies *barcode.Registry
}

// NewRegistry returns a Registry resolving symbologies through symbologies,
// or barcode.Default() if nil.
func NewRegistry(symbologies *barcode.Registry) *Registry {
	if symbologies == nil {
		symbologies = barcode.Default()
	}
	r := &Registry{symbologies: symbologies}
	v := validator.NewValidator()
	v.SetValidationFunc("barcode", r.validateBarcode)
	v.SetValidationFunc("symbology", r.validateSymbology)
	v.SetValidationFunc("uuid", validateUUID)
	v.SetValidationFunc("enum", validateCaseInsensitiveEnum)
	r.validator = v
	return r
}

// Validate checks v's fields against their `validate` tags.
// The error is an ErrorMap when fields are invalid.
func (r *Registry) Validate(v interface{}) error {
	return coerceValidatorPkgError(r.validator.Validate(v))
}

var globalRegistry = NewRegistry(nil)

// Validate validates the fields of a struct based on `validate` tags,
// using the built-in symbologies.
func Validate(v interface{}) error {
	return globalRegistry.Validate(v)
}

// coerceValidatorPkgError converts the underlying package's error types
// into ErrorMap and ErrorArray, so they are not part of this package's API.
func coerceValidatorPkgError(err error) error {
	switch realErr := err.(type) {
	case validator.ErrorMap:
		result := make(ErrorMap, len(realErr))
		for k, v := range realErr {
			result[k] = coerceValidatorPkgErrorArray(v)
		}
		return result
	case validator.ErrorArray:
		return coerceValidatorPkgErrorArray(realErr)
	default:
		return realErr
	}
}

func coerceValidatorPkgErrorArray(err validator.ErrorArray) ErrorArray {
	result := make(ErrorArray, 0, len(err))
	for _, e := range err {
		result = append(result, e)
	}
	return result
}
