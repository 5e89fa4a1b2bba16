package pwned_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lithictech/go-assay/check"
	"github.com/lithictech/go-assay/logctx"
	"github.com/lithictech/go-assay/pwned"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPwned(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "pwned Suite")
}

// SHA-1 of "password" is 5BAA61E4C9B93F3F0682250B6CF8331B7EE68FD8.
const passwordSuffix = "1E4C9B93F3F0682250B6CF8331B7EE68FD8"

var _ = Describe("UndisclosedPassword", func() {
	var server *httptest.Server
	var handler http.HandlerFunc
	var paths []string

	BeforeEach(func() {
		paths = nil
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			paths = append(paths, r.URL.Path)
			handler(w, r)
		}))
	})

	AfterEach(func() {
		server.Close()
	})

	newValidator := func(retries int) (*pwned.UndisclosedPassword, *logctx.Hook) {
		logger, hook := logctx.NewNullLogger()
		v, err := pwned.New(pwned.Options{
			Client:  server.Client(),
			BaseURL: server.URL,
			Retries: &retries,
			Backoff: time.Millisecond,
			Logger:  logger,
		})
		Expect(err).ToNot(HaveOccurred())
		return v, hook
	}

	It("fails breached passwords, sending only the hash prefix", func() {
		handler = func(w http.ResponseWriter, r *http.Request) {
			_, _ = fmt.Fprintf(w, "0018A45C4D1DEF81644B54AB7F969B88D65:1\r\n%s:3730471\r\n", passwordSuffix)
		}
		v, _ := newValidator(0)
		o := v.Validate("password", nil)
		Expect(o.Keys()).To(Equal([]string{pwned.PasswordBreached}))
		Expect(paths).To(Equal([]string{"/range/5BAA6"}))
	})

	It("passes passwords not in the range, and padding entries", func() {
		handler = func(w http.ResponseWriter, r *http.Request) {
			_, _ = fmt.Fprintf(w, "0018A45C4D1DEF81644B54AB7F969B88D65:1\n%s:0\n", passwordSuffix)
		}
		v, _ := newValidator(0)
		Expect(v.Validate("password", nil).IsValid()).To(BeTrue())
	})

	It("fails non-strings and empty strings without a lookup", func() {
		handler = func(w http.ResponseWriter, r *http.Request) {}
		v, _ := newValidator(0)
		Expect(v.Validate(5, nil).Keys()).To(Equal([]string{pwned.WrongInput}))
		Expect(v.Validate("", nil).Keys()).To(Equal([]string{pwned.WrongInput}))
		Expect(paths).To(BeEmpty())
	})

	It("retries server errors", func() {
		var calls int32
		handler = func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = fmt.Fprintf(w, "%s:2\n", passwordSuffix)
		}
		v, _ := newValidator(2)
		Expect(v.Validate("password", nil).Keys()).To(Equal([]string{pwned.PasswordBreached}))
		Expect(paths).To(HaveLen(3))
	})

	It("reports and logs failed lookups", func() {
		handler = func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		v, hook := newValidator(1)
		o := v.Validate("password", nil)
		Expect(o.Keys()).To(Equal([]string{pwned.PasswordLookupFailed}))
		Expect(paths).To(HaveLen(2))
		Expect(hook.LastRecord().Record.Message).To(Equal("password_lookup_failed"))
	})

	It("does not retry client errors", func() {
		handler = func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}
		v, _ := newValidator(3)
		_, err := v.ValidateContext(context.Background(), "password", nil)
		Expect(err).To(MatchError(ContainSubstring("400")))
		Expect(paths).To(HaveLen(1))
	})

	It("rejects negative retries and unknown message keys", func() {
		n := -1
		_, err := pwned.New(pwned.Options{Retries: &n})
		Expect(errors.Is(err, check.ErrInvalidArgument)).To(BeTrue())
		_, err = pwned.New(pwned.Options{Messages: map[string]string{"x": "y"}})
		Expect(errors.Is(err, check.ErrInvalidArgument)).To(BeTrue())
	})
})
