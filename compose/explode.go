package compose

import (
	"strconv"
	"strings"

	"github.com/lithictech/go-assay/check"
	"github.com/pkg/errors"
)

const (
	ExplodeInvalid     = "explodeInvalid"
	ExplodeInvalidItem = "explodeInvalidItem"
)

var ExplodeTemplates = check.Templates{
	ExplodeInvalid:     "Invalid type given",
	ExplodeInvalidItem: "%count% items were invalid: %message%",
}

// DefaultValueDelimiter splits values for Explode when no delimiter is given.
const DefaultValueDelimiter = ","

type ExplodeOptions struct {
	// Validator is applied to every item. Required.
	Validator check.Validator
	// ValueDelimiter defaults to DefaultValueDelimiter.
	ValueDelimiter      string
	BreakOnFirstFailure bool
	Messages            map[string]string
}

// Explode splits a string and validates each item with an inner validator.
// Empty items between consecutive delimiters are validated like any other.
type Explode struct {
	inner     check.Validator
	delimiter string
	breakOn   bool
	templates check.Templates
}

func NewExplode(opts ExplodeOptions) (*Explode, error) {
	if opts.Validator == nil {
		return nil, errors.Wrap(check.ErrMissingValidator, "explode requires a validator")
	}
	t, err := ExplodeTemplates.With(opts.Messages)
	if err != nil {
		return nil, err
	}
	delim := opts.ValueDelimiter
	if delim == "" {
		delim = DefaultValueDelimiter
	}
	return &Explode{inner: opts.Validator, delimiter: delim, breakOn: opts.BreakOnFirstFailure, templates: t}, nil
}

func (v *Explode) Validate(value interface{}, vctx check.Context) check.Outcome {
	s, ok := value.(string)
	if !ok {
		return v.templates.Fail(ExplodeInvalid)
	}
	failed := 0
	var first string
	for _, item := range strings.Split(s, v.delimiter) {
		o := v.inner.Validate(item, vctx)
		if o.IsValid() {
			continue
		}
		if failed == 0 {
			if m, ok := o.First(); ok {
				first = m.Message
			}
		}
		failed++
		if v.breakOn {
			break
		}
	}
	if failed == 0 {
		return check.Valid()
	}
	return v.templates.Fail(ExplodeInvalidItem).
		WithVariable("count", strconv.Itoa(failed)).
		WithVariable("message", first).
		WithVariable("value", s)
}

var _ check.Validator = &Explode{}
