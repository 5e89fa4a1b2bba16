package barcode

import (
	"github.com/lithictech/go-assay/stringutil"
)

const (
	digits       = "0123456789"
	alphanumeric = digits + "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	// code39Chars is the ordered Code 39 table; a character's position is its value.
	code39Chars = alphanumeric + "-. $/+%"
	// code93Chars extends the Code 39 table with the four shift characters,
	// which can appear as check characters but never in the data.
	code93Chars = code39Chars + "!\"§&"
	// code128Extended stands in for the check values 96 to 102,
	// which are function and shift codes rather than printable characters.
	code128Extended = "Çüéâäàå"
	// codabarChars is the ordered Codabar table. T, N, * and E are
	// alternates for the A, B, C and D start/stop characters.
	codabarChars = digits + "-$:/.+ABCD"
)

var (
	digitValues   = stringutil.RuneValues(digits)
	code39Values  = stringutil.RuneValues(code39Chars)
	code93Values  = stringutil.RuneValues(code93Chars)
	issnValues    = stringutil.RuneValues(digits + "X")
	royalValues   = stringutil.RuneValues(alphanumeric)
	codabarValues = func() map[rune]int {
		m := stringutil.RuneValues(codabarChars)
		for i, r := range "TN*E" {
			m[r] = m['A'] + i
		}
		return m
	}()
	code128Values = func() map[rune]int {
		// Code set B: space (32) through DEL (127) are values 0 through 95.
		m := make(map[rune]int, 103)
		for v := 0; v <= 95; v++ {
			m[rune(v+32)] = v
		}
		for i, r := range code128Extended {
			m[r] = 96 + i
		}
		return m
	}()
)

func mod10Check(sum int) int {
	return (10 - sum%10) % 10
}

// weightedFromRight sums payload with weights applied from the rightmost digit,
// alternating a then b.
func weightedFromRight(payload []int, a, b int) int {
	sum := 0
	n := len(payload)
	for i := 0; i < n; i++ {
		w := b
		if i%2 == 0 {
			w = a
		}
		sum += payload[n-1-i] * w
	}
	return sum
}

// gtinCheck is the GS1 check digit shared by EAN, UPC, GTIN, SSCC and ITF-14:
// weights of 3 and 1 from the right of the payload.
func gtinCheck(payload []int) []int {
	return []int{mod10Check(weightedFromRight(payload, 3, 1))}
}

// identcodeCheck is the Deutsche Post Identcode/Leitcode check digit:
// weights of 4 and 9 from the right of the payload.
func identcodeCheck(payload []int) []int {
	return []int{mod10Check(weightedFromRight(payload, 4, 9))}
}

// code25Check weights from the left, 3 for even positions and 1 for odd.
func code25Check(payload []int) []int {
	sum := 0
	for i, d := range payload {
		if i%2 == 0 {
			sum += d * 3
		} else {
			sum += d
		}
	}
	return []int{mod10Check(sum)}
}

// postnetCheck makes the digit sum a multiple of ten.
func postnetCheck(payload []int) []int {
	sum := 0
	for _, d := range payload {
		sum += d
	}
	return []int{mod10Check(sum)}
}

// issnCheck uses weights 8 down to 2 with modulo 11; 10 is written as X.
// A 13 digit ISSN is an EAN-13 and uses its check digit.
func issnCheck(payload []int) []int {
	if len(payload) != 7 {
		return gtinCheck(payload)
	}
	sum := 0
	for i, d := range payload {
		sum += d * (8 - i)
	}
	return []int{(11 - sum%11) % 11}
}

// code39Check is the sum of character values modulo 43.
func code39Check(payload []int) []int {
	sum := 0
	for _, v := range payload {
		sum += v
	}
	return []int{sum % 43}
}

// code93Check computes the C and K check characters.
// C weights the data from the right cycling 1 to 20;
// K weights the data plus C from the right cycling 1 to 15. Both are modulo 47.
func code93Check(payload []int) []int {
	weighted := func(values []int, cycle int) int {
		sum := 0
		n := len(values)
		for i, v := range values {
			sum += v * ((n-1-i)%cycle + 1)
		}
		return sum % 47
	}
	c := weighted(payload, 20)
	k := weighted(append(append([]int(nil), payload...), c), 15)
	return []int{c, k}
}

// royalmailCheck sums the row and column of each character in the
// 6x6 RM4SCC table, modulo 6, and returns the character at that row and column.
func royalmailCheck(payload []int) []int {
	rows, cols := 0, 0
	for _, v := range payload {
		rows += (v/6 + 1) % 6
		cols += (v%6 + 1) % 6
	}
	r := (rows%6 + 5) % 6
	c := (cols%6 + 5) % 6
	return []int{r*6 + c}
}

// codabarCheck makes the sum of every character, start and stop included,
// a multiple of 16.
func codabarCheck(payload []int) []int {
	sum := 0
	for _, v := range payload {
		sum += v
	}
	return []int{(16 - sum%16) % 16}
}

// codabarSplit takes the check character from just before the stop character.
func codabarSplit(values []int) ([]int, []int, bool) {
	n := len(values)
	if n < 3 {
		return nil, nil, false
	}
	payload := make([]int, 0, n-1)
	payload = append(payload, values[:n-2]...)
	payload = append(payload, values[n-1])
	return payload, []int{values[n-2]}, true
}

// code128Check uses code set B: start value 104 plus each value times its position, modulo 103.
func code128Check(payload []int) []int {
	sum := 104
	for i, v := range payload {
		sum += v * (i + 1)
	}
	return []int{sum % 103}
}

func stripRoyalmailFrame(value string) string {
	if len(value) >= 2 && value[0] == '(' && value[len(value)-1] == ')' {
		return value[1 : len(value)-1]
	}
	return value
}

func onlyAtLength(n int) func(int) bool {
	return func(l int) bool {
		return l == n
	}
}

var (
	gtin = &Algorithm{Name: "gtin", Alphabet: digitValues, Width: 1, Compute: gtinCheck}
	// ean8 and upce arrive in a short form without a check digit.
	gtinAt8   = &Algorithm{Name: "gtin", Alphabet: digitValues, Width: 1, Compute: gtinCheck, Applies: onlyAtLength(8)}
	identcode = &Algorithm{Name: "identcode", Alphabet: digitValues, Width: 1, Compute: identcodeCheck}
	code25    = &Algorithm{Name: "code25", Alphabet: digitValues, Width: 1, Compute: code25Check}
	postnet   = &Algorithm{Name: "postnet", Alphabet: digitValues, Width: 1, Compute: postnetCheck}
	issn      = &Algorithm{Name: "issn", Alphabet: issnValues, Width: 1, Compute: issnCheck}
	code39    = &Algorithm{Name: "code39", Alphabet: code39Values, Width: 1, Compute: code39Check}
	code93    = &Algorithm{Name: "code93", Alphabet: code93Values, Width: 2, Compute: code93Check}
	royalmail = &Algorithm{Name: "royalmail", Alphabet: royalValues, Width: 1, Compute: royalmailCheck, Prepare: stripRoyalmailFrame}
	codabar   = &Algorithm{Name: "codabar", Alphabet: codabarValues, Compute: codabarCheck, Split: codabarSplit}
	code128   = &Algorithm{Name: "code128", Alphabet: code128Values, Width: 1, Compute: code128Check}
)
