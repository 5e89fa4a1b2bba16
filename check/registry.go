package check

import (
	"reflect"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// DefaultPriority is the priority of a chain entry that does not set one.
const DefaultPriority = 1

// Spec describes a validator by name, for building validators from configuration.
type Spec struct {
	Name    string                 `json:"name" yaml:"name" toml:"name" option:"name"`
	Options map[string]interface{} `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty" option:"options"`
	// Priority orders the entry in a chain. Higher runs first. Nil means DefaultPriority.
	Priority *int `json:"priority,omitempty" yaml:"priority,omitempty" toml:"priority,omitempty" option:"priority"`
	// BreakChainOnFailure stops the chain when this validator fails.
	BreakChainOnFailure bool `json:"break_chain_on_failure,omitempty" yaml:"break_chain_on_failure,omitempty" toml:"break_chain_on_failure,omitempty" option:"break_chain_on_failure"`
}

// PriorityOrDefault returns Priority, or DefaultPriority if it is unset.
func (s Spec) PriorityOrDefault() int {
	if s.Priority == nil {
		return DefaultPriority
	}
	return *s.Priority
}

// Resolver turns a Spec into a Validator.
type Resolver interface {
	Resolve(spec Spec) (Validator, error)
}

// Factory builds a validator from its options.
// r is the Resolver the factory was called through,
// so factories for combinators can resolve nested specs.
type Factory func(r Resolver, options map[string]interface{}) (Validator, error)

// Registry is a Resolver backed by named factories.
// Names are case-insensitive.
// A Registry is not meant to be filled concurrently with Resolve calls;
// register everything up front.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory, 16)}
}

// Register adds or replaces the factory for name.
func (r *Registry) Register(name string, f Factory) *Registry {
	r.factories[strings.ToLower(name)] = f
	return r
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Has is true if a factory is registered for name.
func (r *Registry) Has(name string) bool {
	_, ok := r.factories[strings.ToLower(name)]
	return ok
}

// Resolve builds the validator described by spec.
func (r *Registry) Resolve(spec Spec) (Validator, error) {
	f, ok := r.factories[strings.ToLower(spec.Name)]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownValidator, "%q", spec.Name)
	}
	v, err := f(r, spec.Options)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", spec.Name)
	}
	return v, nil
}

var specType = reflect.TypeOf(Spec{})

// specFromName lets a bare name stand in for a Spec without options.
func specFromName(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to == specType && from.Kind() == reflect.String {
		return Spec{Name: reflect.ValueOf(data).String()}, nil
	}
	return data, nil
}

// DecodeOptions decodes an options map into the struct pointed to by out,
// using `option` struct tags. Values are weakly typed, so "5", 5 and 5.0
// all decode into an int field, and a string decodes into a Spec with that name.
// Unknown options are an error.
func DecodeOptions(options map[string]interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "option",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.DecodeHookFuncType(specFromName),
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return errors.Wrap(err, "building option decoder")
	}
	if err := dec.Decode(options); err != nil {
		return errors.Wrapf(ErrInvalidArgument, "%v", err)
	}
	return nil
}
