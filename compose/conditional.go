package compose

import (
	"reflect"

	"github.com/lithictech/go-assay/check"
	"github.com/pkg/errors"
)

// Rule decides whether a Conditional applies to a value.
type Rule func(value interface{}, vctx check.Context) bool

type ConditionalOptions struct {
	// Rule is required.
	Rule Rule
	// Validators run when Rule is true. Nil means an empty chain.
	Validators *Chain
}

// Conditional runs its chain only when its rule holds,
// and is otherwise always valid.
type Conditional struct {
	rule  Rule
	chain *Chain
}

func NewConditional(opts ConditionalOptions) (*Conditional, error) {
	if opts.Rule == nil {
		return nil, errors.Wrap(check.ErrInvalidArgument, "the rule option must be callable")
	}
	chain := opts.Validators
	if chain == nil {
		chain = NewChain()
	}
	return &Conditional{rule: opts.Rule, chain: chain}, nil
}

// Chain returns the validators run when the rule holds.
func (v *Conditional) Chain() *Chain {
	return v.chain
}

func (v *Conditional) Validate(value interface{}, vctx check.Context) check.Outcome {
	if !v.rule(value, vctx) {
		return check.Valid()
	}
	return v.chain.Validate(value, vctx)
}

var _ check.Validator = &Conditional{}

// Always is a Rule that always holds.
func Always(interface{}, check.Context) bool { return true }

// Never is a Rule that never holds.
func Never(interface{}, check.Context) bool { return false }

// FieldEquals holds when the context has field set to want.
// Values of different numeric types compare by their string forms,
// so a 1 from JSON equals a configured 1.
func FieldEquals(field string, want interface{}) Rule {
	return func(_ interface{}, vctx check.Context) bool {
		got, ok := vctx.Get(field)
		if !ok {
			return false
		}
		if reflect.DeepEqual(got, want) {
			return true
		}
		return check.ValueString(got) == check.ValueString(want)
	}
}

// FieldPresent holds when the context has a non-nil, non-empty-string field.
func FieldPresent(field string) Rule {
	return func(_ interface{}, vctx check.Context) bool {
		got, ok := vctx.Get(field)
		return ok && got != nil && got != ""
	}
}
