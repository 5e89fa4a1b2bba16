package rules

import (
	"strconv"

	"github.com/lithictech/go-assay/check"
	"github.com/lithictech/go-assay/stringutil"
)

const (
	NotDigits         = "notDigits"
	DigitsStringEmpty = "digitsStringEmpty"
	DigitsInvalid     = "digitsInvalid"
)

var DigitsTemplates = check.Templates{
	NotDigits:         "The input must contain only digits",
	DigitsStringEmpty: "The input is an empty string",
	DigitsInvalid:     "Invalid type given. String, integer or float expected",
}

type DigitsOptions struct {
	Messages map[string]string `option:"messages"`
}

// Digits requires a non-empty string of ASCII digits.
type Digits struct {
	templates check.Templates
}

func NewDigits(opts DigitsOptions) (*Digits, error) {
	t, err := DigitsTemplates.With(opts.Messages)
	if err != nil {
		return nil, err
	}
	return &Digits{templates: t}, nil
}

func (v *Digits) Validate(value interface{}, _ check.Context) check.Outcome {
	s, ok := scalarString(value)
	if !ok {
		return v.templates.Fail(DigitsInvalid)
	}
	if s == "" {
		return v.templates.Fail(DigitsStringEmpty)
	}
	if !stringutil.OnlyRunesOf(s, "0123456789") {
		return v.templates.Fail(NotDigits).WithVariable("value", s)
	}
	return check.Valid()
}

// scalarString is the string form of a string, integer or float.
func scalarString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case int:
		return strconv.Itoa(v), true
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return check.ValueString(v), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}
