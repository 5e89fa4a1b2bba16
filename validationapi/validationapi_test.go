package validationapi_test

import (
	"log/slog"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/lithictech/go-assay/api"
	. "github.com/lithictech/go-assay/api/echoapitest"
	. "github.com/lithictech/go-assay/apitest"
	"github.com/lithictech/go-assay/catalog"
	"github.com/lithictech/go-assay/compose"
	"github.com/lithictech/go-assay/logctx"
	"github.com/lithictech/go-assay/profile"
	"github.com/lithictech/go-assay/validationapi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/rgalanakis/golangal"
)

func TestValidationAPI(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "validationapi Suite")
}

const profiles = `
profiles:
  retail_sku:
    description: Shelf barcodes
    validators:
      - name: notempty
        break_chain_on_failure: true
      - name: barcode
        options:
          symbology: ean13
  wholesale:
    validators:
      - name: conditional
        options:
          rule: has_case
          validators:
            - name: barcode
              options:
                symbology: itf14
`

var _ = Describe("validation API", func() {
	var e *echo.Echo
	var logHook *logctx.Hook

	BeforeEach(func() {
		var logger *slog.Logger
		logger, logHook = logctx.NewNullLogger()
		e = api.New(api.Config{Logger: logger})
		reg := catalog.New(catalog.Options{
			Rules: map[string]compose.Rule{"has_case": compose.FieldPresent("case")},
		})
		set, err := profile.Parse([]byte(profiles), profile.YAML, reg)
		Expect(err).ToNot(HaveOccurred())
		validationapi.Register(e, validationapi.Config{Validators: reg, Profiles: set})
	})

	Describe("GET /v1/symbologies", func() {
		It("lists every symbology and is cacheable", func() {
			rr := Serve(e, GetRequest("/v1/symbologies"))
			Expect(rr).To(HaveResponseCode(200))
			Expect(rr).To(HaveHeader("Cache-Control", Equal(validationapi.SymbologiesCacheControl)))
			Expect(rr).To(HaveJsonBody(HaveKeyWithValue("items", HaveLen(29))))
			Expect(rr).To(HaveJsonBody(HaveKeyWithValue("items", ContainElement(And(
				HaveKeyWithValue("name", "Ean13"),
				HaveKeyWithValue("lengths", "13"),
				HaveKeyWithValue("checksum", "gtin"),
				HaveKeyWithValue("checksum_by_default", true),
			)))))
		})
	})

	Describe("POST /v1/barcodes/check", func() {
		It("checks a barcode of the named symbology", func() {
			rr := PostJSON(e, "/v1/barcodes/check", map[string]interface{}{"symbology": "ean-13", "value": "4006381333931"})
			Expect(rr).To(HaveResponseCode(200))
			Expect(rr).To(HaveJsonBody(And(
				HaveKeyWithValue("symbology", "Ean13"),
				HaveKeyWithValue("checksum", true),
				HaveKeyWithValue("outcome", HaveKeyWithValue("valid", true)),
			)))
		})

		It("reports failures in the outcome", func() {
			rr := PostJSON(e, "/v1/barcodes/check", map[string]interface{}{"symbology": "ean13", "value": "4006381333932"})
			Expect(rr).To(HaveResponseCode(200))
			Expect(rr).To(HaveJsonBody(HaveKeyWithValue("outcome", And(
				HaveKeyWithValue("valid", false),
				HaveKeyWithValue("messages", HaveKeyWithValue("barcodeFailed", "The input failed checksum validation")),
			))))
		})

		It("logs the symbology", func() {
			PostJSON(e, "/v1/barcodes/check", map[string]interface{}{"symbology": "ean-13", "value": "4006381333931"})
			Expect(logHook.LastRecord().Record.Message).To(Equal("request_finished"))
			Expect(logHook.LastRecord().AttrMap()).To(And(
				HaveKeyWithValue("symbology", "Ean13"),
				HaveKeyWithValue("check_valid", true),
			))
		})

		It("can turn the checksum off", func() {
			rr := PostJSON(e, "/v1/barcodes/check", map[string]interface{}{"symbology": "ean13", "value": "4006381333932", "checksum": false})
			Expect(rr).To(HaveJsonBody(And(
				HaveKeyWithValue("checksum", false),
				HaveKeyWithValue("outcome", HaveKeyWithValue("valid", true)),
			)))
		})

		It("defaults the symbology", func() {
			rr := PostJSON(e, "/v1/barcodes/check", map[string]interface{}{"value": "4006381333931"})
			Expect(rr).To(HaveJsonBody(HaveKeyWithValue("symbology", "Ean13")))
		})

		It("reports non-string values as invalid", func() {
			rr := PostJSON(e, "/v1/barcodes/check", map[string]interface{}{"symbology": "upca", "value": 65100004327})
			Expect(rr).To(HaveResponseCode(200))
			Expect(rr).To(HaveJsonBody(HaveKeyWithValue("outcome", HaveKeyWithValue("messages", HaveKey("barcodeInvalid")))))
		})

		It("400s for an unknown symbology", func() {
			rr := PostJSON(e, "/v1/barcodes/check", map[string]interface{}{"symbology": "ean99", "value": "1"})
			Expect(rr).To(HaveResponseCode(400))
			Expect(rr).To(HaveJsonBody(And(
				HaveKeyWithValue("error_code", validationapi.CodeUnknownSymbology),
				HaveKeyWithValue("details", HaveKeyWithValue("fields", HaveKey("Symbology"))),
			)))
		})

		It("400s for malformed json", func() {
			rr := Serve(e, NewRequest("POST", "/v1/barcodes/check", []byte(`{"value":`), JsonReq()))
			Expect(rr).To(HaveResponseCode(400))
			Expect(rr).To(HaveJsonBody(HaveKeyWithValue("error_code", validationapi.CodeInvalidRequest)))
		})
	})

	Describe("POST /v1/chains/check", func() {
		It("builds and runs the chain", func() {
			body := map[string]interface{}{
				"validators": []map[string]interface{}{
					{"name": "notempty", "break_chain_on_failure": true},
					{"name": "barcode", "options": map[string]interface{}{"symbology": "upca"}},
				},
				"value": "",
			}
			rr := PostJSON(e, "/v1/chains/check", body)
			Expect(rr).To(HaveResponseCode(200))
			Expect(rr).To(HaveJsonBody(HaveKeyWithValue("outcome", HaveKeyWithValue("messages", And(
				HaveKey("isEmpty"),
				Not(HaveKey("barcodeInvalidLength")),
			)))))
		})

		It("passes the context to conditional validators", func() {
			body := map[string]interface{}{
				"validators": []map[string]interface{}{
					{"name": "conditional", "options": map[string]interface{}{
						"rule":       "has_case",
						"validators": []map[string]interface{}{{"name": "digits"}},
					}},
				},
				"value": "abc",
			}
			Expect(PostJSON(e, "/v1/chains/check", body)).To(HaveJsonBody(HaveKeyWithValue("outcome", HaveKeyWithValue("valid", true))))
			body["context"] = map[string]interface{}{"case": "12"}
			Expect(PostJSON(e, "/v1/chains/check", body)).To(HaveJsonBody(HaveKeyWithValue("outcome", HaveKeyWithValue("valid", false))))
		})

		It("400s for bad validator configuration", func() {
			body := map[string]interface{}{
				"validators": []map[string]interface{}{{"name": "nope"}, {"name": "regex"}},
				"value":      "x",
			}
			rr := PostJSON(e, "/v1/chains/check", body)
			Expect(rr).To(HaveResponseCode(400))
			Expect(rr).To(HaveJsonBody(And(
				HaveKeyWithValue("error_code", validationapi.CodeInvalidValidatorConfig),
				HaveKeyWithValue("message", And(ContainSubstring("validators[0]"), ContainSubstring("validators[1]"))),
			)))
		})

		It("400s for an empty chain", func() {
			rr := PostJSON(e, "/v1/chains/check", map[string]interface{}{"value": "x"})
			Expect(rr).To(HaveResponseCode(400))
			Expect(rr).To(HaveJsonBody(And(
				HaveKeyWithValue("error_code", validationapi.CodeInvalidRequest),
				HaveKeyWithValue("details", HaveKeyWithValue("fields", HaveKey("Validators"))),
			)))
		})
	})

	Describe("profiles", func() {
		It("lists profiles", func() {
			rr := Serve(e, GetRequest("/v1/profiles"))
			Expect(rr).To(HaveResponseCode(200))
			Expect(rr).To(HaveJsonBody(HaveKeyWithValue("items", ConsistOf(
				And(HaveKeyWithValue("name", "retail_sku"), HaveKeyWithValue("description", "Shelf barcodes"), HaveKeyWithValue("validators", BeEquivalentTo(2))),
				HaveKeyWithValue("name", "wholesale"),
			))))
		})

		It("checks a value with a profile", func() {
			rr := PostJSON(e, "/v1/profiles/Retail_SKU/check", map[string]interface{}{"value": "4006381333931"})
			Expect(rr).To(HaveResponseCode(200))
			Expect(rr).To(HaveJsonBody(And(
				HaveKeyWithValue("profile", "retail_sku"),
				HaveKeyWithValue("outcome", HaveKeyWithValue("valid", true)),
			)))
		})

		It("logs the profile and result", func() {
			PostJSON(e, "/v1/profiles/retail_sku/check", map[string]interface{}{"value": ""})
			Expect(logHook.LastRecord().AttrMap()).To(And(
				HaveKeyWithValue("profile", "retail_sku"),
				HaveKeyWithValue("check_valid", false),
			))
		})

		It("uses the request context", func() {
			rr := PostJSON(e, "/v1/profiles/wholesale/check", map[string]interface{}{"value": "123", "context": map[string]interface{}{"case": "y"}})
			Expect(rr).To(HaveJsonBody(HaveKeyWithValue("outcome", HaveKeyWithValue("messages", HaveKey("barcodeInvalidLength")))))
		})

		It("404s for an unknown profile", func() {
			rr := PostJSON(e, "/v1/profiles/nope/check", map[string]interface{}{"value": "x"})
			Expect(rr).To(HaveResponseCode(404))
			Expect(rr).To(HaveJsonBody(HaveKeyWithValue("error_code", validationapi.CodeUnknownProfile)))
		})
	})
})
