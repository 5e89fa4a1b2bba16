package check

import (
	"encoding/json"
	"strings"
)

// Message is a single rendered failure: a stable key and its human-readable text.
type Message struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

type failure struct {
	key      string
	template string
}

// Outcome is the result of a single validation.
// The zero value is a valid outcome.
//
// Outcomes are never mutated after construction;
// WithError, WithVariable and Merge all return copies.
type Outcome struct {
	failures []failure
	vars     map[string]string
}

// Valid returns an outcome with no errors.
func Valid() Outcome {
	return Outcome{}
}

// Invalid returns an outcome with a single error.
// template may contain %name% placeholders, rendered from the outcome's variables.
func Invalid(key, template string) Outcome {
	return Outcome{}.WithError(key, template)
}

// IsValid is true when there are no errors.
func (o Outcome) IsValid() bool {
	return len(o.failures) == 0
}

// WithError returns a copy of o with the given error added.
// If key is already present, its template is replaced in place,
// so the key keeps its original position.
func (o Outcome) WithError(key, template string) Outcome {
	failures := make([]failure, 0, len(o.failures)+1)
	replaced := false
	for _, f := range o.failures {
		if f.key == key {
			f.template = template
			replaced = true
		}
		failures = append(failures, f)
	}
	if !replaced {
		failures = append(failures, failure{key: key, template: template})
	}
	return Outcome{failures: failures, vars: o.vars}
}

// WithVariable returns a copy of o where %name% renders as value.
func (o Outcome) WithVariable(name, value string) Outcome {
	vars := make(map[string]string, len(o.vars)+1)
	for k, v := range o.vars {
		vars[k] = v
	}
	vars[name] = value
	return Outcome{failures: o.failures, vars: vars}
}

// Merge returns a copy of o with the rendered errors of other appended.
// On a key collision other's message wins.
// other's messages are rendered with other's variables before merging,
// so variables of the two outcomes never mix.
func (o Outcome) Merge(other Outcome) Outcome {
	result := o
	for _, m := range other.Errors() {
		result = result.withRendered(m.Key, m.Message)
	}
	return result
}

func (o Outcome) withRendered(key, message string) Outcome {
	// Escape so that the already-rendered text survives a second render.
	return o.WithError(key, strings.ReplaceAll(message, "%", "%%"))
}

// Errors returns the rendered errors in the order they were added.
func (o Outcome) Errors() []Message {
	result := make([]Message, 0, len(o.failures))
	for _, f := range o.failures {
		result = append(result, Message{Key: f.key, Message: Render(f.template, o.vars)})
	}
	return result
}

// Messages returns the rendered errors as a flat key to message map.
func (o Outcome) Messages() map[string]string {
	result := make(map[string]string, len(o.failures))
	for _, m := range o.Errors() {
		result[m.Key] = m.Message
	}
	return result
}

// Keys returns the error keys in the order they were added.
func (o Outcome) Keys() []string {
	keys := make([]string, 0, len(o.failures))
	for _, f := range o.failures {
		keys = append(keys, f.key)
	}
	return keys
}

// Has is true if o contains an error under key.
func (o Outcome) Has(key string) bool {
	for _, f := range o.failures {
		if f.key == key {
			return true
		}
	}
	return false
}

// First returns the first error, and false if the outcome is valid.
func (o Outcome) First() (Message, bool) {
	if o.IsValid() {
		return Message{}, false
	}
	return o.Errors()[0], true
}

// Variable returns the value of an interpolation variable.
func (o Outcome) Variable(name string) string {
	return o.vars[name]
}

// Err returns nil for a valid outcome, or an *OutcomeError.
func (o Outcome) Err() error {
	if o.IsValid() {
		return nil
	}
	return &OutcomeError{Outcome: o}
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	errs := o.Errors()
	return json.Marshal(map[string]interface{}{
		"valid":    o.IsValid(),
		"messages": o.Messages(),
		"errors":   errs,
	})
}

// OutcomeError lets an invalid outcome travel as an error.
type OutcomeError struct {
	Outcome Outcome
}

func (e *OutcomeError) Error() string {
	errs := e.Outcome.Errors()
	lines := make([]string, 0, len(errs))
	for _, m := range errs {
		lines = append(lines, m.Key+": "+m.Message)
	}
	return "validation failed: " + strings.Join(lines, " | ")
}
