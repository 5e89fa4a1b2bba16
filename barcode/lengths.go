package barcode

import (
	"strconv"
	"strings"
)

type lengthKind int

const (
	unbounded lengthKind = iota
	exact
	oneOf
	even
	odd
	atLeast
)

// Lengths describes the lengths a symbology allows.
// The zero value allows any length.
type Lengths struct {
	kind   lengthKind
	values []int
}

// Exact allows only n characters.
func Exact(n int) Lengths {
	return Lengths{kind: exact, values: []int{n}}
}

// OneOf allows any of the given lengths.
func OneOf(n ...int) Lengths {
	return Lengths{kind: oneOf, values: append([]int(nil), n...)}
}

// Unbounded allows any length.
func Unbounded() Lengths {
	return Lengths{kind: unbounded}
}

// Even allows any even length, including zero.
func Even() Lengths {
	return Lengths{kind: even}
}

// Odd allows any odd length.
func Odd() Lengths {
	return Lengths{kind: odd}
}

// AtLeast allows n or more characters.
func AtLeast(n int) Lengths {
	return Lengths{kind: atLeast, values: []int{n}}
}

// Allows is true if n is an allowed length.
func (l Lengths) Allows(n int) bool {
	switch l.kind {
	case exact, oneOf:
		for _, v := range l.values {
			if v == n {
				return true
			}
		}
		return false
	case atLeast:
		return n >= l.values[0]
	case even:
		return n%2 == 0
	case odd:
		return n%2 == 1
	default:
		return true
	}
}

// IsUnbounded is true if every length is allowed.
func (l Lengths) IsUnbounded() bool {
	return l.kind == unbounded
}

// Values returns the explicit allowed lengths, the minimum for AtLeast,
// or nil for even/odd/unbounded.
func (l Lengths) Values() []int {
	return append([]int(nil), l.values...)
}

// String renders the lengths for messages, like "7/8" or "even".
func (l Lengths) String() string {
	switch l.kind {
	case exact, oneOf:
		parts := make([]string, 0, len(l.values))
		for _, v := range l.values {
			parts = append(parts, strconv.Itoa(v))
		}
		return strings.Join(parts, "/")
	case atLeast:
		return "at least " + strconv.Itoa(l.values[0])
	case even:
		return "even"
	case odd:
		return "odd"
	default:
		return "any"
	}
}

func (l Lengths) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}
