package check

// Context holds the sibling values a validator may consult,
// such as the other fields of the form the value came from.
// A nil Context is always acceptable.
type Context map[string]interface{}

// Get returns the value for key and whether it was present.
func (c Context) Get(key string) (interface{}, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c[key]
	return v, ok
}

// Validator checks a single value.
// Validate must be a total function: any input, including nil and wrong types,
// produces an Outcome rather than a panic.
type Validator interface {
	Validate(value interface{}, vctx Context) Outcome
}

// Func adapts a function to the Validator interface.
type Func func(value interface{}, vctx Context) Outcome

func (f Func) Validate(value interface{}, vctx Context) Outcome {
	return f(value, vctx)
}

// Stateful wraps a Validator in the older "IsValid, then ask for Messages" form.
// It remembers the last outcome, so it is not safe for concurrent use;
// prefer Validate where possible.
type Stateful struct {
	Validator Validator
	last      Outcome
}

// NewStateful returns a Stateful for v.
func NewStateful(v Validator) *Stateful {
	return &Stateful{Validator: v}
}

// IsValid validates value and records the outcome.
func (s *Stateful) IsValid(value interface{}, vctx Context) bool {
	s.last = s.Validator.Validate(value, vctx)
	return s.last.IsValid()
}

// Messages returns the messages of the most recent IsValid call.
func (s *Stateful) Messages() map[string]string {
	return s.last.Messages()
}

// Outcome returns the outcome of the most recent IsValid call.
func (s *Stateful) Outcome() Outcome {
	return s.last
}
