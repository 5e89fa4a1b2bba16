package rules

import (
	"strconv"
	"unicode/utf8"

	"github.com/lithictech/go-assay/check"
	"github.com/pkg/errors"
)

const (
	StringLengthInvalid  = "stringLengthInvalid"
	StringLengthTooShort = "stringLengthTooShort"
	StringLengthTooLong  = "stringLengthTooLong"
)

var StringLengthTemplates = check.Templates{
	StringLengthInvalid:  "Invalid type given. String expected",
	StringLengthTooShort: "The input is less than %min% characters long",
	StringLengthTooLong:  "The input is more than %max% characters long",
}

type StringLengthOptions struct {
	Min int `option:"min"`
	// Max of nil means no maximum.
	Max      *int              `option:"max"`
	Messages map[string]string `option:"messages"`
}

// StringLength checks the length of a string in characters (not bytes).
type StringLength struct {
	min       int
	max       *int
	templates check.Templates
}

func NewStringLength(opts StringLengthOptions) (*StringLength, error) {
	if opts.Min < 0 {
		return nil, errors.Wrapf(check.ErrInvalidArgument, "min must not be negative, got %d", opts.Min)
	}
	if opts.Max != nil && *opts.Max < opts.Min {
		return nil, errors.Wrapf(check.ErrInvalidArgument,
			"max (%d) must be greater than or equal to min (%d)", *opts.Max, opts.Min)
	}
	t, err := StringLengthTemplates.With(opts.Messages)
	if err != nil {
		return nil, err
	}
	return &StringLength{min: opts.Min, max: opts.Max, templates: t}, nil
}

func (v *StringLength) Validate(value interface{}, _ check.Context) check.Outcome {
	s, ok := value.(string)
	if !ok {
		return v.templates.Fail(StringLengthInvalid)
	}
	n := utf8.RuneCountInString(s)
	fail := func(key string) check.Outcome {
		o := v.templates.Fail(key).
			WithVariable("value", s).
			WithVariable("length", strconv.Itoa(n)).
			WithVariable("min", strconv.Itoa(v.min))
		if v.max != nil {
			o = o.WithVariable("max", strconv.Itoa(*v.max))
		}
		return o
	}
	if n < v.min {
		return fail(StringLengthTooShort)
	}
	if v.max != nil && n > *v.max {
		return fail(StringLengthTooLong)
	}
	return check.Valid()
}
