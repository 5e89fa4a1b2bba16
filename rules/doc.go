// Package rules has the small scalar validators that chains are usually built from.
// Each one reports at most one error per call, keyed the same way as in other
// validation libraries (isEmpty, stringLengthTooShort, and so on),
// and accepts message overrides for any of its keys.
package rules
