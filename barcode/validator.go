package barcode

import (
	"github.com/lithictech/go-assay/check"
)

// Error keys produced by the barcode validator.
const (
	Failed        = "barcodeFailed"
	InvalidChars  = "barcodeInvalidChars"
	InvalidLength = "barcodeInvalidLength"
	Invalid       = "barcodeInvalid"
)

// Templates are the default messages for each error key.
var Templates = check.Templates{
	Failed:        "The input failed checksum validation",
	InvalidChars:  "The input contains invalid characters",
	InvalidLength: "The input should have a length of %length% characters",
	Invalid:       "Invalid type given. String expected",
}

// ChecksumMode says whether a validator verifies the check characters.
type ChecksumMode int

const (
	// ChecksumDefault uses the symbology's ChecksumByDefault.
	ChecksumDefault ChecksumMode = iota
	ChecksumOn
	ChecksumOff
)

// ChecksumModeOf converts an optional flag into a ChecksumMode.
func ChecksumModeOf(b *bool) ChecksumMode {
	switch {
	case b == nil:
		return ChecksumDefault
	case *b:
		return ChecksumOn
	default:
		return ChecksumOff
	}
}

// Options configure a Validator.
type Options struct {
	// Symbology is the name of a symbology in Registry.
	// Empty means DefaultSymbology.
	Symbology string
	// Descriptor, if set, is used instead of looking up Symbology.
	Descriptor *Symbology
	// Registry to resolve Symbology in. Nil means Default().
	Registry *Registry
	Checksum ChecksumMode
	// Messages override the default Templates by key.
	Messages map[string]string
}

// Validator checks that a string is a well-formed barcode of one symbology.
//
// The checks run in a fixed order (type, length, characters, checksum)
// and the first failing step is the only error reported.
type Validator struct {
	symbology   *Symbology
	useChecksum bool
	templates   check.Templates
}

// New returns a Validator.
// An unknown symbology or an unknown message key is an error.
func New(opts Options) (*Validator, error) {
	sym := opts.Descriptor
	if sym == nil {
		reg := opts.Registry
		if reg == nil {
			reg = Default()
		}
		name := opts.Symbology
		if name == "" {
			name = DefaultSymbology
		}
		var err error
		if sym, err = reg.Resolve(name); err != nil {
			return nil, err
		}
	}
	templates, err := Templates.With(opts.Messages)
	if err != nil {
		return nil, err
	}
	v := &Validator{symbology: sym, templates: templates}
	switch opts.Checksum {
	case ChecksumOn:
		v.useChecksum = true
	case ChecksumOff:
		v.useChecksum = false
	default:
		v.useChecksum = sym.ChecksumByDefault
	}
	return v, nil
}

// MustNew is New that panics on error.
func MustNew(opts Options) *Validator {
	v, err := New(opts)
	if err != nil {
		panic(err)
	}
	return v
}

// Symbology returns the descriptor being checked.
func (v *Validator) Symbology() *Symbology {
	return v.symbology
}

// UsesChecksum is true if Validate verifies check characters.
func (v *Validator) UsesChecksum() bool {
	return v.useChecksum
}

func (v *Validator) Validate(value interface{}, _ check.Context) check.Outcome {
	s, ok := value.(string)
	if !ok {
		return v.templates.Fail(Invalid)
	}
	fail := func(key string) check.Outcome {
		return v.templates.Fail(key).WithVariable("value", s)
	}
	if !v.symbology.CheckLength(s) {
		return fail(InvalidLength).WithVariable("length", v.symbology.Lengths.String())
	}
	if !v.symbology.CheckCharacters(s) {
		return fail(InvalidChars)
	}
	if v.useChecksum && !v.symbology.CheckChecksum(s) {
		return fail(Failed)
	}
	return check.Valid()
}

var _ check.Validator = &Validator{}
