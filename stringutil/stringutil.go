// Package stringutil has small string helpers shared by the validators.
package stringutil

// Map applies f to each string in in.
func Map(in []string, f func(string) string) []string {
	res := make([]string, 0, len(in))
	for _, s := range in {
		res = append(res, f(s))
	}
	return res
}

// Contains returns true if in contains element,
// false if not.
func Contains(in []string, element string) bool {
	for _, a := range in {
		if a == element {
			return true
		}
	}
	return false
}

// OnlyRunesOf is true if every rune of s appears in allowed.
// An empty s is trivially true.
func OnlyRunesOf(s, allowed string) bool {
	set := make(map[rune]struct{}, len(allowed))
	for _, r := range allowed {
		set[r] = struct{}{}
	}
	for _, r := range s {
		if _, ok := set[r]; !ok {
			return false
		}
	}
	return true
}

// IsASCII is true if every byte of s is below 128.
func IsASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return false
		}
	}
	return true
}

// RuneValues maps each rune of alphabet to its position.
// Later duplicates do not override earlier positions.
func RuneValues(alphabet string) map[rune]int {
	res := make(map[rune]int, len(alphabet))
	i := 0
	for _, r := range alphabet {
		if _, ok := res[r]; !ok {
			res[r] = i
		}
		i++
	}
	return res
}
