package rules

import (
	"github.com/lithictech/go-assay/check"
	"github.com/pkg/errors"
)

const (
	CallbackValue   = "callbackValue"
	CallbackInvalid = "callbackInvalid"
)

var CallbackTemplates = check.Templates{
	CallbackValue:   "The input is not valid",
	CallbackInvalid: "An exception has been raised within the callback",
}

// CallbackFunc decides whether value is valid.
// An error means the decision could not be made.
type CallbackFunc func(value interface{}, vctx check.Context) (bool, error)

type CallbackOptions struct {
	Callback CallbackFunc
	Messages map[string]string
}

// Callback adapts a predicate into a validator.
type Callback struct {
	fn        CallbackFunc
	templates check.Templates
}

func NewCallback(opts CallbackOptions) (*Callback, error) {
	if opts.Callback == nil {
		return nil, errors.Wrap(check.ErrInvalidArgument, "the callback option must be callable")
	}
	t, err := CallbackTemplates.With(opts.Messages)
	if err != nil {
		return nil, err
	}
	return &Callback{fn: opts.Callback, templates: t}, nil
}

func (v *Callback) Validate(value interface{}, vctx check.Context) check.Outcome {
	ok, err := v.fn(value, vctx)
	if err != nil {
		return v.templates.Fail(CallbackInvalid).WithVariable("error", err.Error())
	}
	if !ok {
		return v.templates.Fail(CallbackValue).WithVariable("value", check.ValueString(value))
	}
	return check.Valid()
}
