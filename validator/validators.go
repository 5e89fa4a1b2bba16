package validator

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lithictech/go-assay/barcode"
	"github.com/lithictech/go-assay/stringutil"
	"github.com/rgalanakis/validator"
)

func newError(s string) validator.TextErr {
	return validator.TextErr{Err: errors.New(s)}
}

var (
	// ErrUnknownSymbology is returned when a string names no known symbology.
	ErrUnknownSymbology = newError("not a known barcode symbology")
	// ErrInvalidUUID is returned when a string is not a canonical UUID.
	ErrInvalidUUID = newError("not a uuid string")
)

const (
	optional   = "opt"
	checksum   = "checksum"
	nochecksum = "nochecksum"
)

// Split the param string on |,
// and return a type of (other args, if param ends in |opt, error in the case of empty args).
// Examples:
//
//	"a|b" -> (["a", "b"], false, nil)
//	"a|opt" -> (["a"], true, nil)
//	"|opt" -> ([], false, <error>)
func splitOptionalVal(param string) ([]string, bool, error) {
	params := strings.Split(param, "|")
	optional := params[len(params)-1] == optional
	if optional {
		params = params[:len(params)-1]
	}
	if len(params) == 0 || params[0] == "" {
		return nil, false, validator.ErrBadParameter
	}
	return params, optional, nil
}

// stringOrNil returns the string value of v,
// and whether v is a nil *string, which is always valid.
func stringOrNil(v interface{}) (string, bool, error) {
	if s, ok := v.(string); ok {
		return s, false, nil
	}
	if ptr, ok := v.(*string); ok && ptr == nil {
		return "", true, nil
	}
	return "", false, validator.ErrUnsupported
}

// validateBarcode checks a string against the symbology named in param,
// like "ean13", "code39|checksum", "ean13|nochecksum|opt".
func (r *Registry) validateBarcode(v interface{}, param string) error {
	s, isNil, err := stringOrNil(v)
	if err != nil || isNil {
		return err
	}
	params, optional, err := splitOptionalVal(param)
	if err != nil {
		return err
	}
	opts := barcode.Options{Symbology: params[0], Registry: r.symbologies}
	for _, p := range params[1:] {
		switch p {
		case checksum:
			opts.Checksum = barcode.ChecksumOn
		case nochecksum:
			opts.Checksum = barcode.ChecksumOff
		default:
			return validator.ErrBadParameter
		}
	}
	bv, err := barcode.New(opts)
	if err != nil {
		return validator.ErrBadParameter
	}
	if s == "" && optional {
		return nil
	}
	if m, failed := bv.Validate(s, nil).First(); failed {
		return newError(m.Message)
	}
	return nil
}

// validateSymbology checks that a string names a registered symbology.
func (r *Registry) validateSymbology(v interface{}, param string) error {
	s, isNil, err := stringOrNil(v)
	if err != nil || isNil {
		return err
	}
	if s == "" && param == optional {
		return nil
	}
	if _, err := r.symbologies.Resolve(s); err != nil {
		return ErrUnknownSymbology
	}
	return nil
}

func validateUUID(v interface{}, param string) error {
	s, isNil, err := stringOrNil(v)
	if err != nil || isNil {
		return err
	}
	if s == "" && param == optional {
		return nil
	}
	if len(s) != 36 {
		return ErrInvalidUUID
	}
	if _, err := uuid.Parse(s); err != nil {
		return ErrInvalidUUID
	}
	return nil
}

func validateCaseInsensitiveEnum(v interface{}, param string) error {
	choices, optional, err := splitOptionalVal(param)
	if err != nil {
		return err
	}
	choices = stringutil.Map(choices, strings.ToLower)

	if ss, ok := v.([]string); ok {
		if optional {
			return validator.ErrBadParameter
		}
		for _, s := range ss {
			if !stringutil.Contains(choices, strings.ToLower(s)) {
				return newError("element not one of " + strings.Join(choices, "|"))
			}
		}
		return nil
	}
	s, isNil, err := stringOrNil(v)
	if err != nil || isNil {
		return err
	}
	if s == "" {
		if optional {
			return nil
		}
		return newError("empty string")
	}
	if !stringutil.Contains(choices, strings.ToLower(s)) {
		return newError("is not one of " + strings.Join(choices, "|"))
	}
	return nil
}
