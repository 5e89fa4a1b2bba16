package rules_test

import (
	"errors"
	"testing"

	"github.com/lithictech/go-assay/check"
	"github.com/lithictech/go-assay/rules"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRules(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "rules Suite")
}

func intp(i int) *int {
	return &i
}

var _ = Describe("NotEmpty", func() {
	v, _ := rules.NewNotEmpty(rules.NotEmptyOptions{})

	DescribeTable("empty values",
		func(value interface{}) {
			Expect(v.Validate(value, nil).Keys()).To(Equal([]string{rules.IsEmpty}))
		},
		Entry("nil", nil),
		Entry("empty string", ""),
		Entry("whitespace", " \t\n"),
		Entry("false", false),
		Entry("zero float", 0.0),
		Entry("empty slice", []string{}),
		Entry("empty map", map[string]int{}),
		Entry("nil pointer", (*string)(nil)),
	)

	DescribeTable("non-empty values",
		func(value interface{}) {
			Expect(v.Validate(value, nil).IsValid()).To(BeTrue())
		},
		Entry("string", "a"),
		Entry("zero int", 0),
		Entry("true", true),
		Entry("slice", []int{0}),
		Entry("struct", struct{}{}),
	)

	It("can allow a zero float", func() {
		v, err := rules.NewNotEmpty(rules.NotEmptyOptions{AllowZeroFloat: true})
		Expect(err).ToNot(HaveOccurred())
		Expect(v.Validate(0.0, nil).IsValid()).To(BeTrue())
	})

	It("fails unsupported types", func() {
		Expect(v.Validate(func() {}, nil).Keys()).To(Equal([]string{rules.NotEmptyInvalid}))
	})
})

var _ = Describe("StringLength", func() {
	It("checks min and max in characters", func() {
		v, err := rules.NewStringLength(rules.StringLengthOptions{Min: 2, Max: intp(3)})
		Expect(err).ToNot(HaveOccurred())
		Expect(v.Validate("ab", nil).IsValid()).To(BeTrue())
		Expect(v.Validate("日本語", nil).IsValid()).To(BeTrue())
		Expect(v.Validate("a", nil).Messages()).To(Equal(map[string]string{
			rules.StringLengthTooShort: "The input is less than 2 characters long",
		}))
		Expect(v.Validate("abcd", nil).Messages()).To(Equal(map[string]string{
			rules.StringLengthTooLong: "The input is more than 3 characters long",
		}))
		Expect(v.Validate(5, nil).Keys()).To(Equal([]string{rules.StringLengthInvalid}))
	})

	It("has no maximum by default", func() {
		v, err := rules.NewStringLength(rules.StringLengthOptions{Min: 5})
		Expect(err).ToNot(HaveOccurred())
		Expect(v.Validate("a very long string", nil).IsValid()).To(BeTrue())
		Expect(v.Validate("", nil).Keys()).To(Equal([]string{rules.StringLengthTooShort}))
	})

	It("errors for bad bounds", func() {
		_, err := rules.NewStringLength(rules.StringLengthOptions{Min: 5, Max: intp(2)})
		Expect(errors.Is(err, check.ErrInvalidArgument)).To(BeTrue())
		_, err = rules.NewStringLength(rules.StringLengthOptions{Min: -1})
		Expect(errors.Is(err, check.ErrInvalidArgument)).To(BeTrue())
	})
})

var _ = Describe("Regex", func() {
	It("matches strings and numbers", func() {
		v, err := rules.NewRegex(rules.RegexOptions{Pattern: `^\d{3}$`})
		Expect(err).ToNot(HaveOccurred())
		Expect(v.Validate("123", nil).IsValid()).To(BeTrue())
		Expect(v.Validate(123, nil).IsValid()).To(BeTrue())
		Expect(v.Validate("12a", nil).Messages()).To(Equal(map[string]string{
			rules.RegexNotMatch: `The input does not match against pattern '^\d{3}$'`,
		}))
		Expect(v.Validate(true, nil).Keys()).To(Equal([]string{rules.RegexInvalid}))
	})

	It("errors for missing or bad patterns", func() {
		_, err := rules.NewRegex(rules.RegexOptions{})
		Expect(errors.Is(err, check.ErrInvalidArgument)).To(BeTrue())
		_, err = rules.NewRegex(rules.RegexOptions{Pattern: "("})
		Expect(errors.Is(err, check.ErrInvalidArgument)).To(BeTrue())
	})
})

var _ = Describe("Digits", func() {
	v, _ := rules.NewDigits(rules.DigitsOptions{})

	It("requires only digits", func() {
		Expect(v.Validate("0123", nil).IsValid()).To(BeTrue())
		Expect(v.Validate(42, nil).IsValid()).To(BeTrue())
		Expect(v.Validate(int64(42), nil).IsValid()).To(BeTrue())
		Expect(v.Validate(1.5, nil).Keys()).To(Equal([]string{rules.NotDigits}))
		Expect(v.Validate("12a", nil).Keys()).To(Equal([]string{rules.NotDigits}))
		Expect(v.Validate("", nil).Keys()).To(Equal([]string{rules.DigitsStringEmpty}))
		Expect(v.Validate(nil, nil).Keys()).To(Equal([]string{rules.DigitsInvalid}))
	})
})

var _ = Describe("UUID", func() {
	It("accepts the canonical form only", func() {
		v, err := rules.NewUUID(rules.UUIDOptions{})
		Expect(err).ToNot(HaveOccurred())
		Expect(v.Validate("52b6c4a2-2e4d-4f3a-9f2b-4f0a3c1e9d7b", nil).IsValid()).To(BeTrue())
		Expect(v.Validate("52b6c4a22e4d4f3a9f2b4f0a3c1e9d7b", nil).Keys()).To(Equal([]string{rules.ValueNotUUID}))
		Expect(v.Validate("{52b6c4a2-2e4d-4f3a-9f2b-4f0a3c1e9d7b}", nil).Keys()).To(Equal([]string{rules.ValueNotUUID}))
		Expect(v.Validate("zzb6c4a2-2e4d-4f3a-9f2b-4f0a3c1e9d7b", nil).Keys()).To(Equal([]string{rules.ValueNotUUID}))
		Expect(v.Validate(12, nil).Keys()).To(Equal([]string{rules.ValueNotString}))
	})

	It("can restrict versions", func() {
		v, err := rules.NewUUID(rules.UUIDOptions{Versions: []int{4}})
		Expect(err).ToNot(HaveOccurred())
		Expect(v.Validate("52b6c4a2-2e4d-4f3a-9f2b-4f0a3c1e9d7b", nil).IsValid()).To(BeTrue())
		Expect(v.Validate("52b6c4a2-2e4d-1f3a-9f2b-4f0a3c1e9d7b", nil).IsValid()).To(BeFalse())
	})
})

var _ = Describe("Callback", func() {
	It("requires a callback", func() {
		_, err := rules.NewCallback(rules.CallbackOptions{})
		Expect(errors.Is(err, check.ErrInvalidArgument)).To(BeTrue())
	})

	It("uses the callback result and context", func() {
		v, err := rules.NewCallback(rules.CallbackOptions{Callback: func(value interface{}, vctx check.Context) (bool, error) {
			if value == "boom" {
				return false, errors.New("kaboom")
			}
			other, _ := vctx.Get("other")
			return value == other, nil
		}})
		Expect(err).ToNot(HaveOccurred())
		Expect(v.Validate("x", check.Context{"other": "x"}).IsValid()).To(BeTrue())
		Expect(v.Validate("x", nil).Keys()).To(Equal([]string{rules.CallbackValue}))
		Expect(v.Validate("boom", nil).Keys()).To(Equal([]string{rules.CallbackInvalid}))
	})
})

var _ = Describe("message overrides", func() {
	It("replace defaults and reject unknown keys", func() {
		v, err := rules.NewNotEmpty(rules.NotEmptyOptions{Messages: map[string]string{rules.IsEmpty: "fill it in"}})
		Expect(err).ToNot(HaveOccurred())
		Expect(v.Validate("", nil).Messages()).To(Equal(map[string]string{rules.IsEmpty: "fill it in"}))

		_, err = rules.NewDigits(rules.DigitsOptions{Messages: map[string]string{"bogus": "x"}})
		Expect(errors.Is(err, check.ErrInvalidArgument)).To(BeTrue())
	})
})
