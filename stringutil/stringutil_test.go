package stringutil_test

import (
	"strings"
	"testing"

	"github.com/lithictech/go-assay/stringutil"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestStringUtil(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "stringutil Suite")
}

var _ = Describe("Map", func() {
	It("maps the input slice", func() {
		s := []string{"a", "b"}
		res := stringutil.Map(s, strings.ToUpper)
		Expect(res).To(Equal([]string{"A", "B"}))
	})
})

var _ = Describe("Contains", func() {
	It("is true if the slice contains the string", func() {
		s := []string{"a", "b"}
		Expect(stringutil.Contains(s, "a")).To(BeTrue())
		Expect(stringutil.Contains(s, "A")).To(BeFalse())
	})
})

var _ = Describe("OnlyRunesOf", func() {
	It("checks every rune against the allowed set", func() {
		Expect(stringutil.OnlyRunesOf("0123", "0123456789")).To(BeTrue())
		Expect(stringutil.OnlyRunesOf("01a3", "0123456789")).To(BeFalse())
		Expect(stringutil.OnlyRunesOf("", "0")).To(BeTrue())
		Expect(stringutil.OnlyRunesOf("§", "ab§")).To(BeTrue())
	})
})

var _ = Describe("IsASCII", func() {
	It("rejects bytes over 127", func() {
		Expect(stringutil.IsASCII("abc ~\x01")).To(BeTrue())
		Expect(stringutil.IsASCII("café")).To(BeFalse())
	})
})

var _ = Describe("RuneValues", func() {
	It("maps runes to their position", func() {
		Expect(stringutil.RuneValues("ab§c")).To(Equal(map[rune]int{'a': 0, 'b': 1, '§': 2, 'c': 3}))
	})
})
