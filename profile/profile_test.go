package profile_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lithictech/go-assay/catalog"
	"github.com/lithictech/go-assay/check"
	"github.com/lithictech/go-assay/profile"
	"github.com/lithictech/go-assay/rules"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestProfile(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "profile Suite")
}

const yamlProfiles = `
profiles:
  retail_sku:
    description: Shelf barcodes
    validators:
      - name: notempty
        break_chain_on_failure: true
      - name: barcode
        options:
          symbology: ean13
  sku_list:
    validators:
      - name: explode
        options:
          value_delimiter: ";"
          validator:
            name: barcode
            options:
              symbology: upca
`

const tomlProfiles = `
[profiles.retail_sku]
description = "Shelf barcodes"

[[profiles.retail_sku.validators]]
name = "barcode"
priority = 1
options = { symbology = "ean13" }

[[profiles.retail_sku.validators]]
name = "notempty"
priority = 10
break_chain_on_failure = true
`

var _ = Describe("profiles", func() {
	reg := catalog.New(catalog.Options{})

	It("parses yaml", func() {
		set, err := profile.Parse([]byte(yamlProfiles), profile.YAML, reg)
		Expect(err).ToNot(HaveOccurred())
		Expect(set.Profiles()).To(HaveLen(2))
		p, err := set.Get("Retail_SKU")
		Expect(err).ToNot(HaveOccurred())
		Expect(p.Name).To(Equal("retail_sku"))
		Expect(p.Description).To(Equal("Shelf barcodes"))
		Expect(p.Specs).To(HaveLen(2))
		Expect(p.Validate("", nil).Keys()).To(Equal([]string{rules.IsEmpty}))
		Expect(p.Validate("4006381333931", nil).IsValid()).To(BeTrue())

		list, err := set.Get("sku_list")
		Expect(err).ToNot(HaveOccurred())
		Expect(list.Validate("065100004327;065100004327", nil).IsValid()).To(BeTrue())
	})

	It("parses toml, honoring priorities", func() {
		set, err := profile.Parse([]byte(tomlProfiles), profile.TOML, reg)
		Expect(err).ToNot(HaveOccurred())
		p, err := set.Get("retail_sku")
		Expect(err).ToNot(HaveOccurred())
		Expect(p.Validate("", nil).Keys()).To(Equal([]string{rules.IsEmpty}))
		Expect(p.Validate("4006381333932", nil).Keys()).To(Equal([]string{"barcodeFailed"}))
	})

	It("errors for unknown profiles", func() {
		_, err := profile.Empty().Get("x")
		Expect(errors.Is(err, profile.ErrUnknownProfile)).To(BeTrue())
	})

	It("returns every configuration error", func() {
		bad := `
profiles:
  a:
    validators:
      - name: nope
  b:
    validators: []
  c:
    validators:
      - name: barcode
        options: {symbology: ean99}
`
		_, err := profile.Parse([]byte(bad), profile.YAML, reg)
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, check.ErrUnknownValidator)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("profile a"))
		Expect(err.Error()).To(ContainSubstring("profile b"))
		Expect(err.Error()).To(ContainSubstring("profile c"))
	})

	It("reports profile names that differ only by case", func() {
		dupes := `
profiles:
  Retail:
    validators:
      - name: notempty
  retail:
    validators:
      - name: notempty
  other:
    validators:
      - name: nope
`
		_, err := profile.Parse([]byte(dupes), profile.YAML, reg)
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, profile.ErrDuplicateProfile)).To(BeTrue())
		Expect(errors.Is(err, check.ErrUnknownValidator)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("profile retail collides with Retail"))
	})

	It("rejects unknown keys", func() {
		_, err := profile.Parse([]byte("profiles:\n  a:\n    validatorz: []\n"), profile.YAML, reg)
		Expect(err).To(HaveOccurred())
		_, err = profile.Parse([]byte("[profiles.a]\nvalidatorz = []\n"), profile.TOML, reg)
		Expect(err).To(HaveOccurred())
	})

	Describe("Load", func() {
		It("picks the format by extension", func() {
			dir := GinkgoT().TempDir()
			ypath := filepath.Join(dir, "profiles.yml")
			Expect(os.WriteFile(ypath, []byte(yamlProfiles), 0600)).To(Succeed())
			tpath := filepath.Join(dir, "profiles.toml")
			Expect(os.WriteFile(tpath, []byte(tomlProfiles), 0600)).To(Succeed())

			set, err := profile.Load(ypath, reg)
			Expect(err).ToNot(HaveOccurred())
			Expect(set.Profiles()).To(HaveLen(2))
			set, err = profile.Load(tpath, reg)
			Expect(err).ToNot(HaveOccurred())
			Expect(set.Profiles()).To(HaveLen(1))
		})

		It("errors for other extensions and missing files", func() {
			_, err := profile.Load("profiles.json", reg)
			Expect(errors.Is(err, profile.ErrUnsupportedFormat)).To(BeTrue())
			_, err = profile.Load(filepath.Join(GinkgoT().TempDir(), "nope.yaml"), reg)
			Expect(err).To(HaveOccurred())
		})
	})
})
