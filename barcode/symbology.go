package barcode

import (
	"unicode/utf8"

	"github.com/lithictech/go-assay/stringutil"
)

// Symbology describes one barcode format.
// Descriptors are built once and never modified; share them freely.
type Symbology struct {
	// Name is the canonical name, like "Ean13".
	Name string
	// Lengths are the allowed lengths, in characters.
	Lengths Lengths
	// Characters reports whether value uses only characters allowed by the symbology.
	// It sees the value only after the length check passed.
	Characters func(value string) bool
	// Checksum is nil for symbologies without a check character.
	Checksum *Algorithm
	// ChecksumByDefault is whether validators check the checksum
	// when they are not told otherwise.
	ChecksumByDefault bool
}

// Algorithm is a checksum over character values.
//
// The value is first passed through Prepare (if set),
// then every character is mapped through Alphabet.
// Split divides the values into the payload and the check values
// (by default, the last Width values are the check values).
// The value is valid if Compute(payload) equals the check values.
type Algorithm struct {
	Name     string
	Alphabet map[rune]int
	Width    int
	Compute  func(payload []int) []int
	Split    func(values []int) (payload, check []int, ok bool)
	Prepare  func(value string) string
	// Applies reports whether the checksum is used for a value of the given length.
	// Nil means always.
	Applies func(length int) bool
}

// CheckLength is true if the length of value is allowed.
func (s *Symbology) CheckLength(value string) bool {
	return s.Lengths.Allows(utf8.RuneCountInString(value))
}

// CheckCharacters is true if every character of value is allowed.
func (s *Symbology) CheckCharacters(value string) bool {
	if s.Characters == nil {
		return true
	}
	return s.Characters(value)
}

// HasChecksum is true if the symbology defines a checksum algorithm.
func (s *Symbology) HasChecksum() bool {
	return s.Checksum != nil
}

// CheckChecksum verifies the check character(s) of value.
// Symbologies without an algorithm are vacuously valid.
// Callers should check length and characters first.
func (s *Symbology) CheckChecksum(value string) bool {
	if s.Checksum == nil {
		return true
	}
	return s.Checksum.Verify(value)
}

// Verify is true if value carries the correct check characters.
func (a *Algorithm) Verify(value string) bool {
	if a.Applies != nil && !a.Applies(utf8.RuneCountInString(value)) {
		return true
	}
	if a.Prepare != nil {
		value = a.Prepare(value)
	}
	values := make([]int, 0, len(value))
	for _, r := range value {
		v, ok := a.Alphabet[r]
		if !ok {
			return false
		}
		values = append(values, v)
	}
	split := a.Split
	if split == nil {
		split = a.trailing
	}
	payload, want, ok := split(values)
	if !ok {
		return false
	}
	got := a.Compute(payload)
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func (a *Algorithm) trailing(values []int) ([]int, []int, bool) {
	w := a.Width
	if w <= 0 {
		w = 1
	}
	if len(values) < w {
		return nil, nil, false
	}
	n := len(values) - w
	return values[:n], values[n:], true
}

func onlyRunesOf(allowed string) func(string) bool {
	return func(s string) bool {
		return stringutil.OnlyRunesOf(s, allowed)
	}
}
