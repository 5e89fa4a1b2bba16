package check

import "github.com/pkg/errors"

// Configuration errors. They are returned while building validators,
// never while validating; validation failures are always an Outcome.
// Use errors.Is to test for them, since they are usually wrapped with detail.
var (
	// ErrInvalidArgument is returned when an option has the wrong type or value.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrMissingValidator is returned when a combinator is built without its inner validator.
	ErrMissingValidator = errors.New("missing validator")
	// ErrUnknownValidator is returned when a Resolver has no factory for a name.
	ErrUnknownValidator = errors.New("unknown validator")
)
