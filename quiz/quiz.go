// Package quiz generates random test values.
// Rand is seeded from RAND_SEED when it is set, so failures can be replayed.
package quiz

import (
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lithictech/go-assay/barcode"
	"github.com/pkg/errors"
)

var Rand *rand.Rand

// Seed is the seed Rand was created with.
var Seed int64

func init() {
	seed, err := strconv.ParseInt(os.Getenv("RAND_SEED"), 10, 64)
	if err != nil {
		seed = time.Now().UnixNano()
	}
	Seed = seed
	Rand = rand.New(rand.NewSource(seed))
}

// Digits returns n random decimal digits.
func Digits(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('0' + Rand.Intn(10))
	}
	return string(b)
}

// ErrNotGeneratable is returned for symbologies Barcode cannot build values for.
var ErrNotGeneratable = errors.New("cannot generate values for symbology")

// Barcode returns a random value of length n with correct check characters,
// for symbologies whose checksum is trailing digits over a digit payload.
func Barcode(sym *barcode.Symbology, n int) (string, error) {
	alg := sym.Checksum
	if alg == nil || alg.Split != nil || alg.Prepare != nil || alg.Width <= 0 || n <= alg.Width {
		return "", errors.Wrapf(ErrNotGeneratable, "%s at length %d", sym.Name, n)
	}
	runes := make(map[int]rune, len(alg.Alphabet))
	for r, v := range alg.Alphabet {
		runes[v] = r
	}
	payload := Digits(n - alg.Width)
	values := make([]int, len(payload))
	for i, r := range payload {
		values[i] = alg.Alphabet[r]
	}
	var sb strings.Builder
	sb.WriteString(payload)
	for _, v := range alg.Compute(values) {
		r, ok := runes[v]
		if !ok {
			return "", errors.Wrapf(ErrNotGeneratable, "%s check value %d", sym.Name, v)
		}
		sb.WriteRune(r)
	}
	return sb.String(), nil
}

// MustBarcode is Barcode that panics on error.
func MustBarcode(sym *barcode.Symbology, n int) string {
	s, err := Barcode(sym, n)
	if err != nil {
		panic(err)
	}
	return s
}

// ChangeDigit replaces the digit at i with a different random digit.
func ChangeDigit(s string, i int) string {
	b := []byte(s)
	d := b[i] - '0'
	b[i] = '0' + (d+byte(1+Rand.Intn(9)))%10
	return string(b)
}
